// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package apiversion

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/stacklok/harbor-cli/pkg/errors"
)

// MajorLister enumerates the major versions the client ships command
// implementations for, as strings such as "2".
type MajorLister interface {
	InstalledMajors() []string
}

// Gate rejects versions whose major part has no installed implementation.
type Gate struct {
	lister MajorLister
}

// NewGate creates a Gate backed by lister.
func NewGate(lister MajorLister) *Gate {
	return &Gate{lister: lister}
}

// CheckMajor fails unless the major part of v is installed. The null version
// always passes.
func (g *Gate) CheckMajor(v Version) error {
	if v.IsNull() {
		return nil
	}

	installed := slices.Clone(g.lister.InstalledMajors())
	slices.Sort(installed)
	if slices.Contains(installed, strconv.Itoa(v.major)) {
		return nil
	}

	if len(installed) == 1 {
		return errors.NewUnsupportedVersionError(fmt.Sprintf(
			"Invalid client version '%s'. Major part should be '%s'", v, installed[0]), nil)
	}
	return errors.NewUnsupportedVersionError(fmt.Sprintf(
		"Invalid client version '%s'. Major part must be one of: '%s'", v, strings.Join(installed, ", ")), nil)
}

// ParseAndCheck parses text and validates its major part. User supplied
// version strings should always enter through here.
func (g *Gate) ParseAndCheck(text string) (Version, error) {
	v, err := Parse(text)
	if err != nil {
		return Null, err
	}
	if err := g.CheckMajor(v); err != nil {
		return Null, err
	}
	return v, nil
}

// StaticMajors is a fixed MajorLister.
type StaticMajors []string

// InstalledMajors returns the list itself.
func (m StaticMajors) InstalledMajors() []string {
	return m
}
