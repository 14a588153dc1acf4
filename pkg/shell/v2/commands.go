// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package v2 holds the commands of Harbor API major 2.
//
// Commands whose behaviour changed across minors are registered once per
// version range; the shell picks the implementation covering the
// negotiated version.
package v2

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stacklok/harbor-cli/pkg/shell"
)

// Major is the API major served by this package.
const Major = 2

// Register adds every major 2 command to m. Later registrations of the same
// command take precedence where their ranges overlap.
func Register(m *shell.Module) {
	m.Always(userListCmd)
	m.Always(userShowCmd)
	m.Always(whoamiCmd)
	m.Register("2.0", "", userCreateCmd)
	m.Register("2.0", "", userDeleteCmd)

	m.Register("2.0", "2.3", projectListCmd)
	m.Register("2.4", "", projectListFilteredCmd)
	m.Always(projectShowCmd)
	m.Register("2.0", "", projectCreateCmd)
	m.Register("2.0", "", projectDeleteCmd)

	m.Always(repositoryListCmd)
	m.Always(searchCmd)

	m.Always(usageCmd)
	m.Always(infoCmd)
	m.Register("2.1", "", quotaListCmd)
	m.Register("2.2", "", robotListCmd)
}

func sortByFlag(def string) shell.Flag {
	return shell.Flag{
		Name:    "sortby",
		Usage:   "Sort key.",
		Default: def,
	}
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

var exactlyOneArg = cobra.ExactArgs(1)
