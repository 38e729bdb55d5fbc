// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the cmdrunner command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	cmdrunner "github.com/20142995/command-runner"
	"github.com/20142995/command-runner/cmd/cmdrunner/catalogcmd"
	"github.com/20142995/command-runner/cmd/cmdrunner/run"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		catalogcmd.CatalogCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cmdrunner",
	Description: `cmdrunner runs a catalog of shell commands against a list of targets
(hosts, domains, URLs) on a bounded pool of workers, streaming the output of every command
as it finishes.`,
	Usage:     "cmdrunner run -t example.com -C Ping",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Release(sigCh)

	stopper := &signalbroker.Stopper{}
	ctx = signalbroker.WithStopper(ctx, stopper)

	go signalbroker.Watch(ctx, sigCh, stopper.Stop, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", cmdrunner.Version, cmdrunner.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
