// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the run command, which executes selected catalog commands
// against a list of targets.
package run

import (
	"context"
	"os"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/report"
	"github.com/urfave/cli/v3"
)

const (
	catalogFlag              = "catalog"
	targetFlag               = "target"
	targetsFileFlag          = "targets-file"
	commandFlag              = "command"
	workersFlag              = "workers"
	noShellFlag              = "no-shell"
	tuiFlag                  = "tui"
	markupOutFlag            = "markup-out"
	logFileFlag              = "log-file"
	metricsAddrFlag          = "metrics-addr"
	outputStdOutFlag         = "output-stdout"
	noOutputStdErrFlag       = "no-output-stderr"
	outputSuccessDetailsFlag = "output-success-details"
	cliExitStr               = ""
)

// RunCmd is the command that runs catalog commands against targets.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "cmdrunner run -t example.com -C Ping",
	Description: `Run commands from the catalog against every target.
Each selected command is run once per target, in parallel on a pool of workers.
A selector is "Group/Name", a group name or a command name.

The catalog and the targets file can be local paths or URLs in Hashicorp's go-getter syntax.
When the catalog file does not exist it is created with the default commands.
Without targets on a terminal, targets are read interactively, one per line,
until an empty line.

The first interrupt stops the job and kills running processes, a second one exits at once.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      catalogFlag,
			Aliases:   []string{"c"},
			Usage:     "Catalog file, YAML or HCL (.hcl)",
			Value:     catalog.DefaultPath,
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:    targetFlag,
			Aliases: []string{"t"},
			Usage:   "Target to run the commands against. Specify multiple times for more targets.",
		},
		&cli.StringFlag{
			Name:      targetsFileFlag,
			Aliases:   []string{"f"},
			Usage:     "File with one target per line, '-' for stdin. Supports go-getter syntax.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:    commandFlag,
			Aliases: []string{"C"},
			Usage:   "Command selector. Specify multiple times to run more commands.",
		},
		&cli.StringFlag{
			Name:    workersFlag,
			Aliases: []string{"w"},
			Usage: "Number of commands to run at once. " +
				"Defaults to the number of CPU cores available, invalid values mean 1.",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     noShellFlag,
			Usage:    "Split command lines with shell quoting rules and run them without a shell",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     tuiFlag,
			Aliases:  []string{"interactive"},
			Usage:    "Run with interactive Terminal User Interface (TUI) showing real-time progress",
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:      markupOutFlag,
			Usage:     "Write the output of every command, translated to span markup, to this file",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      logFileFlag,
			Usage:     "Task log file. Defaults to command_runner.log in the XDG state directory.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     metricsAddrFlag,
			Usage:    "Serve Prometheus metrics on this address, e.g. :9090",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     outputSuccessDetailsFlag,
			Aliases:  []string{"success"},
			Usage:    "Include successful results in the summary",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     noOutputStdErrFlag,
			Aliases:  []string{"no-stderr"},
			Usage:    "Exclude stderr output from the summary",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:     outputStdOutFlag,
			Aliases:  []string{"stdout"},
			Usage:    "Include stdout output in the summary",
			OnlyOnce: true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running run command")

	summary := report.DefaultOutputOptions()
	summary.IncludeStdErr = !cmd.Bool(noOutputStdErrFlag)
	summary.IncludeStdOut = cmd.Bool(outputStdOutFlag)
	summary.ShowSuccessDetails = cmd.Bool(outputSuccessDetailsFlag)

	opts := Options{
		Catalog:     cmd.String(catalogFlag),
		Targets:     cmd.StringSlice(targetFlag),
		TargetsFile: cmd.String(targetsFileFlag),
		Commands:    cmd.StringSlice(commandFlag),
		Workers:     cmd.String(workersFlag),
		NoShell:     cmd.Bool(noShellFlag),
		TUI:         cmd.Bool(tuiFlag),
		MarkupOut:   cmd.String(markupOutFlag),
		LogFile:     cmd.String(logFileFlag),
		MetricsAddr: cmd.String(metricsAddrFlag),
		Summary:     summary,
	}

	streams := Streams{In: os.Stdin, Out: cmd.Writer, Err: cmd.ErrWriter}

	if err := Execute(ctx, opts, streams); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}
