// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package harbor

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/networking"
)

var _ apiversion.VersionSource = (*Client)(nil)

// versionInfo is the body of GET /api/version.
type versionInfo struct {
	Version    string `json:"version"`
	MinVersion string `json:"min_version"`
}

// ServerVersion asks the server which API versions it accepts. A server
// without microversion support answers with an empty version or does not
// serve the endpoint at all.
func (c *Client) ServerVersion(ctx context.Context) (apiversion.ServerVersion, error) {
	var info versionInfo
	err := c.Do(ctx, http.MethodGet, VersionPath, nil, nil, &info)
	if networking.IsHTTPError(err, http.StatusNotFound) {
		logger.Debugf("%s is not served, assuming a server without microversions", VersionPath)
		return apiversion.ServerVersion{}, nil
	}
	if err != nil {
		return apiversion.ServerVersion{}, err
	}
	return apiversion.ServerVersion{
		MinVersion: normalizeVersion(info.MinVersion),
		Version:    normalizeVersion(info.Version),
	}, nil
}

// normalizeVersion turns semantic version strings such as "v2.5.1" into the
// "major.minor" form. Anything else is returned trimmed so that the
// version parser reports it.
func normalizeVersion(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	canonical := raw
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return raw
	}
	return strings.TrimPrefix(semver.MajorMinor(canonical), "v")
}
