// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"

	"github.com/stacklok/harbor-cli/pkg/config"
	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/versions"
)

// newRootCmd creates the root command with the local subcommands. The
// server commands are added by the caller once the API version is known.
func (a *App) newRootCmd(provider config.Provider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "harbor",
		DisableAutoGenTag: true,
		Short:             "Command-line interface to the Harbor API",
		Long: `Command-line interface to the Harbor API.

The client and the server agree on an API version before each command runs.
Use --os-api-version to pin a version (X.Y) or to ask for the newest one of
a major (X.latest); the commands and flags offered depend on that version.`,
		Example:       `  harbor --os-api-version 2.latest help project-list`,
		Version:       versions.GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newVersionCmd(a.negotiator))
	rootCmd.AddCommand(newConfigCmd(provider, a.gate))

	return rootCmd
}
