// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
)

func noop(context.Context, *Env, []string) error { return nil }

func TestCatalog_InstalledMajors(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	assert.Empty(t, c.InstalledMajors())

	c.Install(10, func(*Module) {})
	c.Install(2, func(*Module) {})
	c.Install(3, func(*Module) {})

	assert.Equal(t, []string{"2", "3", "10"}, c.InstalledMajors())

	m, ok := c.Module(3)
	require.True(t, ok)
	assert.Equal(t, 3, m.Major())

	_, ok = c.Module(4)
	assert.False(t, ok)
}

func TestCatalog_GateIntegration(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Install(2, func(*Module) {})
	gate := apiversion.NewGate(c)

	_, err := gate.ParseAndCheck("2.3")
	require.NoError(t, err)

	_, err = gate.ParseAndCheck("3.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Major part should be '2'")
}

func TestCatalog_InstallPanics(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Install(2, func(*Module) {})

	assert.Panics(t, func() { c.Install(2, func(*Module) {}) }, "duplicate major")
	assert.Panics(t, func() { c.Install(0, func(*Module) {}) }, "major zero")
}

func TestModule_RegisterPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		floor, ceiling string
		cmd            Command
	}{
		{
			name: "missing handler",
			cmd:  Command{Name: "user-list"},
		},
		{
			name:  "malformed floor",
			floor: "2.x",
			cmd:   Command{Name: "user-list", Run: noop},
		},
		{
			name:  "floor of another major",
			floor: "3.1",
			cmd:   Command{Name: "user-list", Run: noop},
		},
		{
			name:    "floor above ceiling",
			floor:   "2.4",
			ceiling: "2.1",
			cmd:     Command{Name: "user-list", Run: noop},
		},
		{
			name: "malformed flag range",
			cmd: Command{Name: "user-list", Run: noop, Flags: []Flag{
				{Name: "sortby", Floor: "two"},
			}},
		},
		{
			name: "bad int default",
			cmd: Command{Name: "user-list", Run: noop, Flags: []Flag{
				{Name: "page", Kind: FlagInt, Default: "ten"},
			}},
		},
		{
			name: "empty command name",
			cmd:  Command{Run: noop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCatalog()
			assert.Panics(t, func() {
				c.Install(2, func(m *Module) {
					m.Register(tt.floor, tt.ceiling, tt.cmd)
				})
			})
		})
	}
}

func TestModule_RegisterImplicitCeiling(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	c.Install(2, func(m *Module) {
		m.Register("2.2", "", Command{Name: "robot-list", Run: noop})
		m.Always(Command{Name: "whoami", Run: noop})
	})
	m, _ := c.Module(2)

	entries := m.Registry().Entries("robot-list")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Ceiling.Equal(apiversion.Latest(2)))

	entries = m.Registry().Entries("whoami")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Floor.IsNull())
	assert.True(t, entries[0].Ceiling.IsNull())
}
