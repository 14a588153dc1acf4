// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import "github.com/stacklok/harbor-cli/pkg/apiversion"

// DefaultAPIVersion is requested when neither a flag, the environment nor
// the config file name a version.
const DefaultAPIVersion = "2.0"

// Range of API versions this client implements. The baseline is the version
// used against servers without microversions.
var (
	MinAPIVersion      = apiversion.New(2, 0)
	MaxAPIVersion      = apiversion.New(2, 5)
	BaselineAPIVersion = apiversion.New(2, 0)
)

// Environment variables read for the global flags.
const (
	envURL        = "HARBOR_URL"
	envUsername   = "HARBOR_USERNAME"
	envPassword   = "HARBOR_PASSWORD"
	envProject    = "HARBOR_PROJECT"
	envAPIVersion = "HARBOR_API_VERSION"
	envCACert     = "OS_CACERT"
)

// Exit codes returned by the binary.
const (
	ExitError        = 1
	ExitCommandError = 127
)
