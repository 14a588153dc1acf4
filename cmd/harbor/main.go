// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the harbor CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/stacklok/harbor-cli/cmd/harbor/app"
	"github.com/stacklok/harbor-cli/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	// Create a context that will be canceled on signal
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := app.New().Run(ctx, os.Args[1:])
	cancel()
	if err != nil {
		logger.Errorf("ERROR: %v", err)
		os.Exit(app.ExitCode(err))
	}
}
