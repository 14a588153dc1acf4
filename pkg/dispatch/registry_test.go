// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/errors"
)

var v = apiversion.MustParse

func TestRegister_DefaultsCeilingToLatestOfFloorMajor(t *testing.T) {
	t.Parallel()

	r := New[string]()
	require.NoError(t, r.Register("project-list", v("2.4"), apiversion.Null, "impl"))

	entries := r.Entries("project-list")
	require.Len(t, entries, 1)
	assert.Equal(t, v("2.4"), entries[0].Floor)
	assert.Equal(t, apiversion.Latest(2), entries[0].Ceiling)
}

func TestRegister_Invalid(t *testing.T) {
	t.Parallel()

	r := New[string]()
	assert.Error(t, r.Register("", v("2.0"), v("2.1"), "impl"))
	assert.Error(t, r.Register("inverted", v("2.5"), v("2.1"), "impl"))
	assert.Empty(t, r.Names())
	assert.Panics(t, func() { r.MustRegister("inverted", v("2.5"), v("2.1"), "impl") })
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.MustRegister("project-list", v("2.0"), v("2.3"), "project-list-2.0")
	r.MustRegister("project-list", v("2.4"), apiversion.Null, "project-list-2.4")
	r.MustRegister("quota-list", v("2.1"), v("2.2"), "quota-list-2.1")
	r.MustRegister("info", apiversion.Null, apiversion.Null, "info")

	tests := []struct {
		name      string
		operation string
		version   string
		want      string
		wantFound bool
	}{
		{"older implementation", "project-list", "2.2", "project-list-2.0", true},
		{"newer implementation", "project-list", "2.7", "project-list-2.4", true},
		{"newer implementation on latest", "project-list", "2.latest", "project-list-2.4", true},
		{"below every floor", "quota-list", "2.0", "", false},
		{"above every ceiling", "quota-list", "2.3", "", false},
		{"unbounded entry", "info", "7.1", "info", true},
		{"unknown operation", "robot-list", "2.5", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found, err := r.Resolve(tt.operation, v(tt.version))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_LastRegisteredWinsOnOverlap(t *testing.T) {
	t.Parallel()

	// The later entry has the lower floor; registration order still decides.
	r := New[string]()
	r.MustRegister("user-list", v("2.3"), apiversion.Null, "first")
	r.MustRegister("user-list", v("2.0"), apiversion.Null, "second")

	got, found, err := r.Resolve("user-list", v("2.5"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", got)

	r.MustRegister("user-list", v("2.5"), v("2.5"), "third")
	got, _, err = r.Resolve("user-list", v("2.5"))
	require.NoError(t, err)
	assert.Equal(t, "third", got)

	got, _, err = r.Resolve("user-list", v("2.4"))
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestResolve_NullVersion(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.MustRegister("info", apiversion.Null, apiversion.Null, "info")

	_, found, err := r.Resolve("info", apiversion.Null)
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, errors.IsUnsupportedVersion(err))
}

func TestResolve_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	r := New[int]()
	for minor := 0; minor < 10; minor++ {
		r.MustRegister("op", apiversion.New(2, minor), apiversion.New(2, minor), minor)
	}

	var wg sync.WaitGroup
	for minor := 0; minor < 10; minor++ {
		wg.Add(1)
		go func(minor int) {
			defer wg.Done()
			got, found, err := r.Resolve("op", apiversion.New(2, minor))
			assert.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, minor, got)
		}(minor)
	}
	wg.Wait()
}

func TestDescribeRange(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.MustRegister("project-list", v("2.4"), apiversion.Null, "b")
	r.MustRegister("project-list", v("2.0"), v("2.3"), "a")
	r.MustRegister("robot-list", v("2.2"), v("2.6"), "r")
	r.MustRegister("info", apiversion.Null, apiversion.Null, "i")

	lo, hi, ok := r.DescribeRange("project-list")
	require.True(t, ok)
	assert.Equal(t, v("2.0"), lo)
	assert.Equal(t, v("2.latest"), hi)

	loS, hiS, ok := r.DescribeRangeStrings("robot-list")
	require.True(t, ok)
	assert.Equal(t, "2.2", loS)
	assert.Equal(t, "2.6", hiS)

	loS, hiS, ok = r.DescribeRangeStrings("info")
	require.True(t, ok)
	assert.Empty(t, loS)
	assert.Empty(t, hiS)

	_, _, ok = r.DescribeRange("missing")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	t.Parallel()

	r := New[string]()
	r.MustRegister("b", v("2.0"), apiversion.Null, "b1")
	r.MustRegister("a", v("2.0"), apiversion.Null, "a1")
	r.MustRegister("b", v("2.3"), apiversion.Null, "b2")

	if diff := cmp.Diff([]string{"b", "a"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	entries := r.Entries("b")
	require.Len(t, entries, 2)
	assert.Less(t, entries[0].Ordinal(), entries[1].Ordinal())
}
