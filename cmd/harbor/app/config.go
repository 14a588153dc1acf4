// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/config"
	"github.com/stacklok/harbor-cli/pkg/shell"
)

func newConfigCmd(provider config.Provider, gate *apiversion.Gate) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage application configuration",
		Long: `The config command manages the defaults stored in the harbor config file.
Flags and environment variables take precedence over the stored values.
The password is never stored.`,
	}

	fields := strings.Join(config.ListConfigFields(), ", ")

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigCmdFunc(cmd, provider)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Store a configuration value",
		Long: fmt.Sprintf(`Store a configuration value.

Valid fields: %s

Example:
  harbor config set url https://harbor.example.com
  harbor config set api-version 2.latest`, fields),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigCmdFunc(cmd, provider, gate, args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "unset <field>",
		Short: "Remove a configuration value",
		Long:  fmt.Sprintf("Remove a configuration value, reverting to the default.\n\nValid fields: %s", fields),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.UnsetConfigField(provider, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %s\n", args[0])
			return nil
		},
	})

	return configCmd
}

func showConfigCmdFunc(cmd *cobra.Command, provider config.Provider) error {
	names := config.ListConfigFields()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		value, _, err := config.GetConfigField(provider, name)
		if err != nil {
			return err
		}
		spec, _ := config.GetConfigFieldSpec(name)
		rows = append(rows, []string{name, value, spec.Description})
	}
	return shell.PrintList(cmd.OutOrStdout(), []string{"field", "value", "description"}, rows, "")
}

func setConfigCmdFunc(cmd *cobra.Command, provider config.Provider, gate *apiversion.Gate, name, value string) error {
	// The installed majors are only known here.
	if name == config.FieldAPIVersion {
		if _, err := gate.ParseAndCheck(value); err != nil {
			return err
		}
	}

	if err := config.SetConfigField(provider, name, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s to %s\n", name, value)
	return nil
}
