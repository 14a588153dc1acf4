// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package dispatch maps operation names to the implementations written for
// particular API version ranges and picks the one to run for a negotiated
// version.
//
// A Registry is populated once at startup and only read afterwards, so
// concurrent calls to Resolve and DescribeRange need no locking.
package dispatch

import (
	"fmt"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
)

// Entry is one implementation of an operation together with the inclusive
// version range it was written for.
type Entry[T any] struct {
	Name    string
	Floor   apiversion.Version
	Ceiling apiversion.Version
	Impl    T

	// ordinal is the registration order across the whole registry.
	ordinal int
}

// Ordinal returns the position of the entry in registration order.
func (e Entry[T]) Ordinal() int {
	return e.ordinal
}

// Registry holds the version history of every registered operation.
type Registry[T any] struct {
	entries map[string][]Entry[T]
	names   []string
	next    int
}

// New creates an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[string][]Entry[T]),
	}
}

// Register adds an implementation of name valid for [floor, ceiling]. A null
// ceiling with a non-null floor means "every later minor of floor's major".
// Two null bounds make the entry cover every version.
func (r *Registry[T]) Register(name string, floor, ceiling apiversion.Version, impl T) error {
	if name == "" {
		return fmt.Errorf("operation name must not be empty")
	}
	if ceiling.IsNull() && !floor.IsNull() {
		ceiling = apiversion.Latest(floor.Major())
	}
	if !floor.IsNull() && !ceiling.IsNull() && floor.Greater(ceiling) {
		return fmt.Errorf("operation %q: floor %s is above ceiling %s", name, floor, ceiling)
	}

	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = append(r.entries[name], Entry[T]{
		Name:    name,
		Floor:   floor,
		Ceiling: ceiling,
		Impl:    impl,
		ordinal: r.next,
	})
	r.next++
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[T]) MustRegister(name string, floor, ceiling apiversion.Version, impl T) {
	if err := r.Register(name, floor, ceiling, impl); err != nil {
		panic(err)
	}
}

// Resolve returns the implementation of name to use at version v: among the
// entries whose range covers v, the one registered last. The boolean is
// false when no entry covers v, meaning the operation is unavailable at that
// version. v must not be the null version.
func (r *Registry[T]) Resolve(name string, v apiversion.Version) (T, bool, error) {
	var zero T
	if _, err := v.Matches(apiversion.Null, apiversion.Null); err != nil {
		return zero, false, err
	}

	best := -1
	var impl T
	for _, e := range r.entries[name] {
		ok, err := v.Matches(e.Floor, e.Ceiling)
		if err != nil {
			return zero, false, err
		}
		if ok && e.ordinal > best {
			best = e.ordinal
			impl = e.Impl
		}
	}
	if best < 0 {
		return zero, false, nil
	}
	return impl, true, nil
}

// DescribeRange returns the lowest floor and the highest ceiling across all
// entries for name. A null result bound means that side is unbounded. The
// boolean is false when name has no entries.
func (r *Registry[T]) DescribeRange(name string) (lo, hi apiversion.Version, ok bool) {
	entries := r.entries[name]
	if len(entries) == 0 {
		return apiversion.Null, apiversion.Null, false
	}

	lo, hi = entries[0].Floor, entries[0].Ceiling
	for _, e := range entries[1:] {
		if e.Floor.Less(lo) {
			lo = e.Floor
		}
		if hi.IsNull() {
			continue
		}
		if e.Ceiling.IsNull() || e.Ceiling.Greater(hi) {
			hi = e.Ceiling
		}
	}
	return lo, hi, true
}

// DescribeRangeStrings is DescribeRange rendered for help text. Unbounded
// sides render as an empty string.
func (r *Registry[T]) DescribeRangeStrings(name string) (lo, hi string, ok bool) {
	loV, hiV, ok := r.DescribeRange(name)
	if !ok {
		return "", "", false
	}
	if !loV.IsNull() {
		lo = loV.String()
	}
	if !hiV.IsNull() {
		hi = hiV.String()
	}
	return lo, hi, true
}

// Entries returns the entries for name in registration order.
func (r *Registry[T]) Entries(name string) []Entry[T] {
	return append([]Entry[T](nil), r.entries[name]...)
}

// Names returns every registered operation name in order of first
// registration.
func (r *Registry[T]) Names() []string {
	return append([]string(nil), r.names...)
}
