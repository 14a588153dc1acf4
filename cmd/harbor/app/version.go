// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/versions"
)

// newVersionCmd creates a new version command
func newVersionCmd(negotiator *apiversion.Negotiator) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version of the harbor client",
		Long: `Display detailed version information about the harbor client, including version number, ` +
			`git commit, build date, Go version and the supported API version range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			minVersion, maxVersion := negotiator.ClientRange()

			if jsonOutput {
				return printJSONVersionInfo(cmd.OutOrStdout(), info, minVersion, maxVersion)
			}
			printVersionInfo(cmd.OutOrStdout(), info, minVersion, maxVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information as JSON")

	return cmd
}

// printVersionInfo prints the version information
func printVersionInfo(w io.Writer, info versions.VersionInfo, minVersion, maxVersion apiversion.Version) {
	fmt.Fprintf(w, "harbor %s\n", info.Version)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Built: %s\n", info.BuildDate)
	fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s\n", info.Platform)
	fmt.Fprintf(w, "API versions: %s - %s\n", minVersion, maxVersion)
}

// printJSONVersionInfo prints the version information as JSON
func printJSONVersionInfo(w io.Writer, info versions.VersionInfo, minVersion, maxVersion apiversion.Version) error {
	out := struct {
		versions.VersionInfo
		MinAPIVersion string `json:"min_api_version"`
		MaxAPIVersion string `json:"max_api_version"`
	}{
		VersionInfo:   info,
		MinAPIVersion: minVersion.String(),
		MaxAPIVersion: maxVersion.String(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version information: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
