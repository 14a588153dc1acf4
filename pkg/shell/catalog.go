// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/dispatch"
)

// Catalog holds the command modules of every installed API major.
type Catalog struct {
	modules map[int]*Module
}

var _ apiversion.MajorLister = (*Catalog)(nil)

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{modules: make(map[int]*Module)}
}

// Install creates the module of major and lets register fill it. Installing
// a major twice panics.
func (c *Catalog) Install(major int, register func(m *Module)) {
	if major < 1 {
		panic(fmt.Sprintf("invalid API major %d", major))
	}
	if _, exists := c.modules[major]; exists {
		panic(fmt.Sprintf("API major %d is already installed", major))
	}
	m := &Module{major: major, ops: dispatch.New[Command]()}
	register(m)
	c.modules[major] = m
}

// Module returns the module of major.
func (c *Catalog) Module(major int) (*Module, bool) {
	m, ok := c.modules[major]
	return m, ok
}

// InstalledMajors lists the installed majors in ascending order.
func (c *Catalog) InstalledMajors() []string {
	majors := make([]int, 0, len(c.modules))
	for major := range c.modules {
		majors = append(majors, major)
	}
	slices.Sort(majors)

	out := make([]string, len(majors))
	for i, major := range majors {
		out[i] = strconv.Itoa(major)
	}
	return out
}

// Module is the command set of one API major.
type Module struct {
	major int
	ops   *dispatch.Registry[Command]
}

// Major returns the API major the module serves.
func (m *Module) Major() int {
	return m.major
}

// Registry exposes the version history of the module's commands.
func (m *Module) Registry() *dispatch.Registry[Command] {
	return m.ops
}

// Register adds an implementation of cmd valid from floor to ceiling, both
// in X.Y form. Empty bounds are unbounded, and an empty ceiling with a
// floor means every later minor of the floor's major. Later registrations
// win where ranges overlap. Registration happens at startup, so malformed
// input panics.
func (m *Module) Register(floor, ceiling string, cmd Command) {
	if cmd.Run == nil {
		panic(fmt.Sprintf("command %q has no handler", cmd.Name))
	}
	lo := apiversion.MustParse(floor)
	hi := apiversion.MustParse(ceiling)
	for _, bound := range []apiversion.Version{lo, hi} {
		if !bound.IsNull() && bound.Major() != m.major {
			panic(fmt.Sprintf("command %q: version %s does not belong to API major %d", cmd.Name, bound, m.major))
		}
	}
	for _, f := range cmd.Flags {
		if err := f.validate(); err != nil {
			panic(fmt.Sprintf("command %q: %v", cmd.Name, err))
		}
	}
	m.ops.MustRegister(cmd.Name, lo, hi, cmd)
}

// Always adds a command available at every version of the major.
func (m *Module) Always(cmd Command) {
	m.Register("", "", cmd)
}
