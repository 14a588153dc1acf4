// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package apiversion

import (
	"context"
	"fmt"

	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/logger"
)

// ServerVersion is the version information a server advertises. Both fields
// are empty when the server predates microversions.
type ServerVersion struct {
	// MinVersion is the oldest microversion the server accepts.
	MinVersion string
	// Version is the newest microversion the server accepts.
	Version string
}

// VersionSource fetches the version information advertised by a server.
//
//go:generate mockgen -destination=mocks/mock_version_source.go -package=mocks -source=negotiate.go VersionSource
type VersionSource interface {
	ServerVersion(ctx context.Context) (ServerVersion, error)
}

// ServerRange asks src for its supported range. A server that reports no
// current version yields two null versions.
func ServerRange(ctx context.Context, src VersionSource) (floor, ceiling Version, err error) {
	info, err := src.ServerVersion(ctx)
	if err != nil {
		return Null, Null, fmt.Errorf("failed to get server version: %w", err)
	}
	if info.Version == "" {
		return Null, Null, nil
	}

	floor, err = Parse(info.MinVersion)
	if err != nil {
		return Null, Null, err
	}
	ceiling, err = Parse(info.Version)
	if err != nil {
		return Null, Null, err
	}
	return floor, ceiling, nil
}

// Negotiator picks the version a client and server use for a session.
type Negotiator struct {
	clientMin Version
	clientMax Version
	baseline  Version
}

// NewNegotiator creates a Negotiator for a client supporting
// [clientMin, clientMax]. baseline is the legacy default version that is
// used against servers without microversions; requesting it explicitly is
// treated like requesting no particular version.
func NewNegotiator(clientMin, clientMax, baseline Version) *Negotiator {
	return &Negotiator{
		clientMin: clientMin,
		clientMax: clientMax,
		baseline:  baseline,
	}
}

// ClientRange returns the client's supported range.
func (n *Negotiator) ClientRange() (Version, Version) {
	return n.clientMin, n.clientMax
}

// Negotiate reconciles requested with the server range [serverMin, serverMax].
// Two null server bounds mean the server does not support microversions.
func (n *Negotiator) Negotiate(requested, serverMin, serverMax Version) (Version, error) {
	legacyServer := serverMin.IsNull() && serverMax.IsNull()

	if n.isPinned(requested) {
		if legacyServer {
			return Null, errors.NewUnsupportedVersionError("Server doesn't support microversions", nil)
		}
		ok, err := requested.Matches(serverMin, serverMax)
		if err != nil {
			return Null, err
		}
		if !ok {
			return Null, errors.NewUnsupportedVersionError(fmt.Sprintf(
				"The specified version '%s' isn't supported by server. The valid version range is '%s' to '%s'",
				requested, serverMin, serverMax), nil)
		}
		return requested, nil
	}

	switch {
	case legacyServer:
		return n.baseline, nil
	case n.clientMin.Greater(serverMax):
		return Null, n.rangeError("Server version is too old.", serverMin, serverMax)
	case n.clientMax.Less(serverMin):
		return Null, n.rangeError("Server version is too new.", serverMin, serverMax)
	case n.clientMax.LessOrEqual(serverMax):
		return n.clientMax, nil
	default:
		return serverMax, nil
	}
}

// Discover fetches the server range from src and negotiates requested
// against it.
func (n *Negotiator) Discover(ctx context.Context, src VersionSource, requested Version) (Version, error) {
	serverMin, serverMax, err := ServerRange(ctx, src)
	if err != nil {
		return Null, err
	}
	logger.Debugf("server API version range is '%s' to '%s', client range is '%s' to '%s'",
		serverMin, serverMax, n.clientMin, n.clientMax)

	negotiated, err := n.Negotiate(requested, serverMin, serverMax)
	if err != nil {
		return Null, err
	}
	logger.Debugf("requested API version '%s', using '%s'", requested, negotiated)
	return negotiated, nil
}

// isPinned reports whether the caller asked for one specific version. The
// null version, "latest" and the baseline all leave the choice to negotiation.
func (n *Negotiator) isPinned(requested Version) bool {
	return !requested.IsNull() && !requested.IsLatest() && !requested.Equal(n.baseline)
}

func (n *Negotiator) rangeError(reason string, serverMin, serverMax Version) error {
	return errors.NewUnsupportedVersionError(fmt.Sprintf(
		"%s The client valid version range is '%s' to '%s'. The server valid version range is '%s' to '%s'.",
		reason, n.clientMin, n.clientMax, serverMin, serverMax), nil)
}
