// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stacklok/harbor-cli/pkg/config"
)

// Keys of the settings resolved through viper.
const (
	keyDebug      = "debug"
	keyTimings    = "timings"
	keyConfig     = "config"
	keyURL        = "url"
	keyUsername   = "username"
	keyPassword   = "password"
	keyProject    = "project"
	keyTimeout    = "timeout"
	keyInsecure   = "insecure"
	keyCACert     = "ca-cert"
	keyAPIVersion = "api-version"
)

type globalFlag struct {
	key  string
	flag string
	env  string
}

var globalFlags = []globalFlag{
	{key: keyDebug, flag: "debug"},
	{key: keyTimings, flag: "timings"},
	{key: keyConfig, flag: "config"},
	{key: keyURL, flag: "os-baseurl", env: envURL},
	{key: keyUsername, flag: "os-username", env: envUsername},
	{key: keyPassword, flag: "os-password", env: envPassword},
	{key: keyProject, flag: "os-project", env: envProject},
	{key: keyTimeout, flag: "timeout"},
	{key: keyInsecure, flag: "insecure"},
	{key: keyCACert, flag: "os-cacert", env: envCACert},
	{key: keyAPIVersion, flag: "os-api-version", env: envAPIVersion},
}

// addGlobalFlags defines the flags accepted before and after the
// subcommand.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.Bool("debug", false, "Print debugging output.")
	fs.Bool("timings", false, "Print call timing info.")
	fs.String("config", "", "Path of the config file (default $XDG_CONFIG_HOME/harbor/config.yaml).")
	fs.String("os-baseurl", "", fmt.Sprintf("API base url. Defaults to env[%s].", envURL))
	fs.String("os-username", "", fmt.Sprintf("Username. Defaults to env[%s].", envUsername))
	fs.String("os-password", "", fmt.Sprintf("User's password. Defaults to env[%s].", envPassword))
	fs.String("os-project", "", fmt.Sprintf("Project Id. Defaults to env[%s].", envProject))
	fs.Int("timeout", 0, "Set request timeout (in seconds).")
	fs.Bool("insecure", false, `Explicitly allow client to perform "insecure" TLS (https) requests. `+
		"The server's certificate will not be verified against any certificate authorities. "+
		"This option should be used with caution.")
	fs.String("os-cacert", "", fmt.Sprintf(
		"Specify a CA bundle file to use in verifying a TLS (https) server certificate. Defaults to env[%s].", envCACert))
	fs.String("os-api-version", "", fmt.Sprintf(
		`Accepts X.Y (where X is major and Y is minor part) or "X.latest", defaults to env[%s].`, envAPIVersion))
}

// newStartupFlagSet parses the global flags ahead of the subcommands, which
// depend on the negotiated version. Unknown flags belong to subcommands and
// are skipped.
func newStartupFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("harbor", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	addGlobalFlags(fs)
	fs.BoolP("help", "h", false, "")
	return fs
}

// bindGlobalFlags binds every global flag and its environment variable.
// Precedence is flag, then environment, then config file, then default.
func bindGlobalFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, gf := range globalFlags {
		if err := v.BindPFlag(gf.key, fs.Lookup(gf.flag)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", gf.flag, err)
		}
		if gf.env == "" {
			continue
		}
		if err := v.BindEnv(gf.key, gf.env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", gf.env, err)
		}
	}
	v.SetDefault(keyAPIVersion, DefaultAPIVersion)
	return nil
}

// applyConfigDefaults makes the config file values the fallback for
// settings given neither as flag nor in the environment.
func applyConfigDefaults(v *viper.Viper, cfg *config.Config) {
	setIfNotEmpty := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}
	setIfNotEmpty(keyURL, cfg.URL)
	setIfNotEmpty(keyUsername, cfg.Username)
	setIfNotEmpty(keyProject, cfg.Project)
	setIfNotEmpty(keyAPIVersion, cfg.APIVersion)
	setIfNotEmpty(keyCACert, cfg.CACertPath)
	if cfg.Insecure {
		v.SetDefault(keyInsecure, true)
	}
	if cfg.Timeout > 0 {
		v.SetDefault(keyTimeout, cfg.Timeout)
	}
}
