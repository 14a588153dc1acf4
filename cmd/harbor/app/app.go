// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the harbor command-line
// application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/config"
	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/harbor"
	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/shell"
	v2 "github.com/stacklok/harbor-cli/pkg/shell/v2"
)

// localCommands never talk to the server.
var localCommands = []string{"help", "completion", "version", "config", "__complete", "__completeNoDesc"}

// App is the harbor CLI.
type App struct {
	catalog      *shell.Catalog
	gate         *apiversion.Gate
	negotiator   *apiversion.Negotiator
	out          io.Writer
	errOut       io.Writer
	readPassword func() (string, error)
}

// Option configures an App.
type Option func(*App)

// WithOutput redirects the standard and error output.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(read func() (string, error)) Option {
	return func(a *App) {
		a.readPassword = read
	}
}

// New creates the CLI with every installed API major.
func New(opts ...Option) *App {
	catalog := shell.NewCatalog()
	catalog.Install(v2.Major, v2.Register)

	a := &App{
		catalog:      catalog,
		gate:         apiversion.NewGate(catalog),
		negotiator:   apiversion.NewNegotiator(MinAPIVersion, MaxAPIVersion, BaselineAPIVersion),
		out:          os.Stdout,
		errOut:       os.Stderr,
		readPassword: readPasswordFromTerminal,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the command line args, without the program name.
//
// Startup happens in two phases. The global flags are parsed first to find
// the requested API version and the connection settings. Unless the
// command is local or help was asked for, the version is then negotiated
// with the server, and the subcommands are built for the resulting version
// before the full command line is parsed and run.
func (a *App) Run(ctx context.Context, args []string) error {
	v := viper.New()
	startup := newStartupFlagSet()
	if err := startup.Parse(args); err != nil {
		return errors.NewInvalidArgumentError(err.Error(), err)
	}
	if err := bindGlobalFlags(v, startup); err != nil {
		return err
	}

	// The logger reads its level from the global viper. Restored on return.
	if v.GetBool(keyDebug) && !viper.GetBool(keyDebug) {
		viper.Set(keyDebug, true)
		logger.Initialize()
		defer func() {
			viper.Set(keyDebug, false)
			logger.Initialize()
		}()
	}

	provider := config.NewProvider(v.GetString(keyConfig))
	cfg, err := provider.LoadOrCreateConfig()
	if err != nil {
		logger.Warnf("Failed to load configuration, using defaults: %v", err)
		cfg = &config.Config{}
	}
	applyConfigDefaults(v, cfg)

	requested, err := a.gate.ParseAndCheck(v.GetString(keyAPIVersion))
	if err != nil {
		return err
	}
	if requested.IsNull() {
		requested = apiversion.MustParse(DefaultAPIVersion)
	}

	positional := startup.Args()
	help, _ := startup.GetBool("help")
	showHelp := help || len(positional) == 0 || positional[0] == "help"

	module, ok := a.catalog.Module(requested.Major())
	if !ok {
		return errors.NewInternalError(fmt.Sprintf("no commands installed for API major %d", requested.Major()), nil)
	}

	// Names unknown to the module are left to cobra, which rejects them
	// without a server round trip.
	opts := shell.BuildOptions{Version: requested, ShowRanges: showHelp}
	var client *harbor.Client
	if !showHelp && !slices.Contains(localCommands, positional[0]) &&
		slices.Contains(module.Registry().Names(), positional[0]) {
		client, err = a.connect(ctx, v, requested)
		if err != nil {
			return err
		}
		opts.Version = client.APIVersion()
		opts.Client = client
	}

	subcommands, err := module.Build(opts)
	if err != nil {
		return err
	}

	root := a.newRootCmd(provider)
	root.AddCommand(subcommands...)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return err
	}

	if client != nil && v.GetBool(keyTimings) {
		return shell.PrintTimings(a.out, client.Timings())
	}
	return nil
}

// connect creates the client and negotiates the API version with the
// server.
func (a *App) connect(ctx context.Context, v *viper.Viper, requested apiversion.Version) (*harbor.Client, error) {
	baseURL := v.GetString(keyURL)
	if baseURL == "" {
		return nil, errors.NewCommandError(fmt.Sprintf(
			"You must provide harbor url via either --os-baseurl or env[%s].", envURL), nil)
	}
	username := v.GetString(keyUsername)
	if username == "" {
		return nil, errors.NewCommandError(fmt.Sprintf(
			"You must provide username via either --os-username or env[%s].", envUsername), nil)
	}
	project := v.GetString(keyProject)
	if project == "" {
		return nil, errors.NewCommandError(fmt.Sprintf(
			"You must provide project via either --os-project or env[%s].", envProject), nil)
	}

	password := v.GetString(keyPassword)
	for password == "" {
		var err error
		if password, err = a.readPassword(); err != nil {
			return nil, err
		}
	}

	client, err := harbor.NewClient(a.gate, harbor.Options{
		BaseURL:    baseURL,
		Username:   username,
		Password:   password,
		Project:    project,
		Timeout:    time.Duration(v.GetInt(keyTimeout)) * time.Second,
		Insecure:   v.GetBool(keyInsecure),
		CACertPath: v.GetString(keyCACert),
		Timings:    v.GetBool(keyTimings),
	})
	if err != nil {
		return nil, err
	}

	negotiated, err := a.negotiator.Discover(ctx, client, requested)
	if err != nil {
		return nil, err
	}
	if err := client.SetAPIVersion(negotiated); err != nil {
		return nil, err
	}
	return client, nil
}

func readPasswordFromTerminal() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.NewCommandError(fmt.Sprintf(
			"You must provide password via either --os-password or env[%s].", envPassword), nil)
	}

	fmt.Fprint(os.Stderr, "password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	if errors.IsCommand(err) {
		return ExitCommandError
	}
	return ExitError
}
