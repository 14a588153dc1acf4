// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package shell turns the version-scoped command catalogs of the installed
// API majors into cobra subcommands for a negotiated API version.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/harbor"
)

// Handler runs a command against the server.
type Handler func(ctx context.Context, env *Env, args []string) error

// Command is one implementation of a server-side command.
type Command struct {
	// Name is the subcommand name, e.g. "user-list".
	Name string
	// ArgsUsage documents the positional arguments, e.g. "<user>".
	ArgsUsage string
	Short     string
	Long      string
	// Args validates the positional arguments. Nil accepts none.
	Args  cobra.PositionalArgs
	Flags []Flag
	Run   Handler
}

// FlagKind is the value type of a Flag.
type FlagKind int

const (
	// FlagString is a string valued flag.
	FlagString FlagKind = iota
	// FlagBool is a boolean switch.
	FlagBool
	// FlagInt is an integer valued flag.
	FlagInt
)

// Flag is a command flag, optionally restricted to a range of API versions.
type Flag struct {
	Name      string
	Shorthand string
	Usage     string
	Kind      FlagKind
	Default   string
	// Floor and Ceiling bound the versions the flag exists at, in X.Y form.
	// Both empty means always. An empty Ceiling with a Floor means every
	// later minor of the Floor's major.
	Floor   string
	Ceiling string
}

// versioned reports whether the flag carries a version range.
func (f Flag) versioned() bool {
	return f.Floor != "" || f.Ceiling != ""
}

// bounds parses Floor and Ceiling, filling in the implicit ceiling.
func (f Flag) bounds() (floor, ceiling apiversion.Version, err error) {
	if floor, err = apiversion.Parse(f.Floor); err != nil {
		return apiversion.Null, apiversion.Null, err
	}
	if ceiling, err = apiversion.Parse(f.Ceiling); err != nil {
		return apiversion.Null, apiversion.Null, err
	}
	if ceiling.IsNull() && !floor.IsNull() {
		ceiling = apiversion.Latest(floor.Major())
	}
	return floor, ceiling, nil
}

func (f Flag) validate() error {
	if f.Name == "" {
		return fmt.Errorf("flag name must not be empty")
	}
	floor, ceiling, err := f.bounds()
	if err != nil {
		return fmt.Errorf("flag --%s: %w", f.Name, err)
	}
	if !floor.IsNull() && !ceiling.IsNull() && floor.Greater(ceiling) {
		return fmt.Errorf("flag --%s: floor %s is above ceiling %s", f.Name, floor, ceiling)
	}

	switch f.Kind {
	case FlagBool:
		if f.Default != "" {
			if _, err := strconv.ParseBool(f.Default); err != nil {
				return fmt.Errorf("flag --%s: invalid boolean default %q", f.Name, f.Default)
			}
		}
	case FlagInt:
		if f.Default != "" {
			if _, err := strconv.Atoi(f.Default); err != nil {
				return fmt.Errorf("flag --%s: invalid integer default %q", f.Name, f.Default)
			}
		}
	case FlagString:
	default:
		return fmt.Errorf("flag --%s: unknown kind %d", f.Name, f.Kind)
	}
	return nil
}

// supported reports whether the flag exists at version v.
func (f Flag) supported(v apiversion.Version) (bool, error) {
	floor, ceiling, err := f.bounds()
	if err != nil {
		return false, err
	}
	return v.Matches(floor, ceiling)
}

// define adds the flag to fs.
func (f Flag) define(fs *pflag.FlagSet, usage string) {
	switch f.Kind {
	case FlagBool:
		def, _ := strconv.ParseBool(f.Default)
		fs.BoolP(f.Name, f.Shorthand, def, usage)
	case FlagInt:
		def, _ := strconv.Atoi(f.Default)
		fs.IntP(f.Name, f.Shorthand, def, usage)
	default:
		fs.StringP(f.Name, f.Shorthand, f.Default, usage)
	}
}

// Env is what a Handler gets to work with.
type Env struct {
	Client  *harbor.Client
	Version apiversion.Version
	Out     io.Writer

	flags *pflag.FlagSet
}

// NewEnv creates an Env reading flag values from flags.
func NewEnv(client *harbor.Client, version apiversion.Version, out io.Writer, flags *pflag.FlagSet) *Env {
	if flags == nil {
		flags = pflag.NewFlagSet("", pflag.ContinueOnError)
	}
	return &Env{Client: client, Version: version, Out: out, flags: flags}
}

// Has reports whether the flag exists at the negotiated version.
func (e *Env) Has(name string) bool {
	return e.flags.Lookup(name) != nil
}

// Changed reports whether the flag was set on the command line.
func (e *Env) Changed(name string) bool {
	f := e.flags.Lookup(name)
	return f != nil && f.Changed
}

// String returns the value of a flag, or "" when the flag does not exist at
// the negotiated version.
func (e *Env) String(name string) string {
	f := e.flags.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// Bool returns the value of a boolean flag, false when it does not exist.
func (e *Env) Bool(name string) bool {
	b, _ := strconv.ParseBool(e.String(name))
	return b
}

// Int returns the value of an integer flag, 0 when it does not exist.
func (e *Env) Int(name string) int {
	i, _ := strconv.Atoi(e.String(name))
	return i
}
