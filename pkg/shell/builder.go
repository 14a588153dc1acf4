// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/harbor"
	"github.com/stacklok/harbor-cli/pkg/logger"
)

// rangeSuffix is appended to help texts of versioned commands and flags.
const rangeSuffix = " (Supported by API versions '%s' - '%s')"

// BuildOptions controls how a Module is turned into cobra commands.
type BuildOptions struct {
	// Version selects the implementation of every command. It is the
	// negotiated version, or the requested one when the server is not
	// contacted.
	Version apiversion.Version
	// Client is handed to the handlers. Nil when the server is not
	// contacted; running a command then fails.
	Client *harbor.Client
	// ShowRanges annotates help texts with the supported version ranges.
	ShowRanges bool
}

// Build returns one cobra command per operation of the module available at
// opts.Version, in registration order. Operations with no implementation
// covering the version are left out.
func (m *Module) Build(opts BuildOptions) ([]*cobra.Command, error) {
	var cmds []*cobra.Command
	for _, name := range m.ops.Names() {
		impl, ok, err := m.ops.Resolve(name, opts.Version)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debugf("command %s is not available at API version %s", name, opts.Version)
			continue
		}

		cmd, err := m.newCobraCommand(impl, opts)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (m *Module) newCobraCommand(impl Command, opts BuildOptions) (*cobra.Command, error) {
	short, long := impl.Short, impl.Long
	if long == "" {
		long = short
	}
	if opts.ShowRanges {
		if lo, hi, ok := m.ops.DescribeRangeStrings(impl.Name); ok && (lo != "" || hi != "") {
			suffix := fmt.Sprintf(rangeSuffix, lo, hi)
			short += suffix
			long += suffix
		}
	}

	use := impl.Name
	if impl.ArgsUsage != "" {
		use += " " + impl.ArgsUsage
	}
	args := impl.Args
	if args == nil {
		args = cobra.NoArgs
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Client == nil {
				return errors.NewCommandError(
					fmt.Sprintf("command %s needs a connection to the Harbor server", impl.Name), nil)
			}
			env := NewEnv(opts.Client, opts.Version, cmd.OutOrStdout(), cmd.Flags())
			return impl.Run(cmd.Context(), env, args)
		},
	}

	for _, f := range impl.Flags {
		ok, err := f.supported(opts.Version)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debugf("flag --%s of %s is not available at API version %s", f.Name, impl.Name, opts.Version)
			continue
		}
		f.define(cmd.Flags(), flagUsage(f, opts.ShowRanges))
	}
	return cmd, nil
}

func flagUsage(f Flag, showRanges bool) string {
	if !showRanges || !f.versioned() {
		return f.Usage
	}
	floor, ceiling, err := f.bounds()
	if err != nil {
		return f.Usage
	}
	var lo, hi string
	if !floor.IsNull() {
		lo = floor.String()
	}
	if !ceiling.IsNull() {
		hi = ceiling.String()
	}
	return strings.TrimSpace(f.Usage) + fmt.Sprintf(rangeSuffix, lo, hi)
}
