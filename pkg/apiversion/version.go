// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package apiversion implements Harbor API microversions: the major.minor
// version value, range checks against inclusive bounds, the major-version gate
// for user supplied versions and negotiation between client and server ranges.
package apiversion

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/stacklok/harbor-cli/pkg/errors"
)

// latestToken is the minor part that stands for the newest minor of a major.
const latestToken = "latest"

// versionPattern is the accepted grammar: a non-zero major without leading
// zeros, then a minor that is 0, a number without leading zeros, or "latest".
var versionPattern = regexp.MustCompile(`^([1-9]\d*)\.([1-9]\d*|0|latest)$`)

// Version is an API microversion. The zero value is the null version, which
// means "unspecified": it cannot be rendered or range checked.
//
// A Version whose minor part is "latest" compares greater than every finite
// minor of the same major.
type Version struct {
	major  int
	minor  int
	latest bool
}

// Null is the unspecified version.
var Null = Version{}

// New returns the version major.minor. New(0, 0) is the null version.
func New(major, minor int) Version {
	return Version{major: major, minor: minor}
}

// Latest returns the version major.latest.
func Latest(major int) Version {
	return Version{major: major, latest: true}
}

// Parse parses text of the form "<major>.<minor>" or "<major>.latest".
// Empty text yields the null version.
func Parse(text string) (Version, error) {
	if text == "" {
		return Null, nil
	}

	match := versionPattern.FindStringSubmatch(text)
	if match == nil {
		return Null, invalidFormat(text, nil)
	}

	major, err := strconv.Atoi(match[1])
	if err != nil {
		return Null, invalidFormat(text, err)
	}
	if match[2] == latestToken {
		return Latest(major), nil
	}

	minor, err := strconv.Atoi(match[2])
	if err != nil {
		return Null, invalidFormat(text, err)
	}
	return New(major, minor), nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// compiled-in constants.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func invalidFormat(text string, cause error) error {
	return errors.NewUnsupportedVersionError(fmt.Sprintf(
		"Invalid format of client version '%s'. Expected format 'X.Y', where X is a major part "+
			"and Y is a minor part of version.", text), cause)
}

// Major returns the major part.
func (v Version) Major() int {
	return v.major
}

// Minor returns the minor part. It is meaningless when IsLatest is true.
func (v Version) Minor() int {
	return v.minor
}

// IsNull reports whether v is the unspecified version.
func (v Version) IsNull() bool {
	return v.major == 0 && v.minor == 0 && !v.latest
}

// IsLatest reports whether the minor part is "latest".
func (v Version) IsLatest() bool {
	return v.latest
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after other. Majors are compared first, then minors, with "latest"
// above every finite minor.
func (v Version) Compare(other Version) int {
	switch {
	case v.major < other.major:
		return -1
	case v.major > other.major:
		return 1
	case v.latest && other.latest:
		return 0
	case v.latest:
		return 1
	case other.latest:
		return -1
	case v.minor < other.minor:
		return -1
	case v.minor > other.minor:
		return 1
	}
	return 0
}

// CompareValue is Compare for callers holding an untyped value. It fails
// with a type mismatch error when other is not a Version or *Version.
func (v Version) CompareValue(other any) (int, error) {
	switch o := other.(type) {
	case Version:
		return v.Compare(o), nil
	case *Version:
		if o != nil {
			return v.Compare(*o), nil
		}
	}
	return 0, errors.NewTypeMismatchError(
		fmt.Sprintf("'%v' should be an instance of '%T'", other, v), nil)
}

// Equal reports whether v and other are the same version.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Less reports whether v < other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// LessOrEqual reports whether v <= other.
func (v Version) LessOrEqual(other Version) bool {
	return v.Compare(other) <= 0
}

// Greater reports whether v > other.
func (v Version) Greater(other Version) bool {
	return v.Compare(other) > 0
}

// GreaterOrEqual reports whether v >= other.
func (v Version) GreaterOrEqual(other Version) bool {
	return v.Compare(other) >= 0
}

// Matches reports whether v lies within the inclusive range [floor, ceiling].
// A null bound leaves that side of the range open. The null version cannot
// be range checked.
func (v Version) Matches(floor, ceiling Version) (bool, error) {
	if v.IsNull() {
		return false, errors.NewUnsupportedVersionError("Null APIVersion doesn't support 'matches'.", nil)
	}

	switch {
	case floor.IsNull() && ceiling.IsNull():
		return true, nil
	case ceiling.IsNull():
		return floor.LessOrEqual(v), nil
	case floor.IsNull():
		return v.LessOrEqual(ceiling), nil
	default:
		return floor.LessOrEqual(v) && v.LessOrEqual(ceiling), nil
	}
}

// Render returns the canonical string form, which parses back to v.
func (v Version) Render() (string, error) {
	if v.IsNull() {
		return "", errors.NewUnsupportedVersionError("Null APIVersion cannot be converted to string.", nil)
	}
	if v.latest {
		return fmt.Sprintf("%d.%s", v.major, latestToken), nil
	}
	return fmt.Sprintf("%d.%d", v.major, v.minor), nil
}

// String implements fmt.Stringer for logs and messages. Unlike Render it
// never fails: the null version prints as "null".
func (v Version) String() string {
	s, err := v.Render()
	if err != nil {
		return "null"
	}
	return s
}
