// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/20142995/command-runner/internal/catalog"
	"github.com/20142995/command-runner/internal/ctxlog"
	"github.com/20142995/command-runner/internal/task"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

const (
	stdinName    = "-"
	targetPrompt = "target> "
)

// ErrReadTargets is returned when the targets file cannot be read.
var ErrReadTargets = errors.New("failed to read targets")

// isTerminal reports whether targets can be prompted for. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// promptTargets reads targets interactively. Replaced in tests.
var promptTargets = readTargetsInteractive

// collectTargets merges --target values with the targets file.
// With neither and a terminal attached, the user is prompted.
func collectTargets(ctx context.Context, opts Options, stdin io.Reader) ([]string, error) {
	targets := task.ParseTargets(strings.Join(opts.Targets, "\n"))

	switch opts.TargetsFile {
	case "":
	case stdinName:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Join(ErrReadTargets, err)
		}

		targets = append(targets, task.ParseTargets(string(data))...)
	default:
		data, err := catalog.ReadSource(ctx, opts.TargetsFile)
		if err != nil {
			return nil, errors.Join(ErrReadTargets, err)
		}

		targets = append(targets, task.ParseTargets(string(data))...)
	}

	if len(targets) > 0 || opts.TargetsFile != "" || !isTerminal() {
		return targets, nil
	}

	ctxlog.Debug(ctx, "no targets given, prompting")

	return promptTargets()
}

// readTargetsInteractive prompts for one target per line until an empty line or EOF.
// Ctrl+C abandons the input.
func readTargetsInteractive() ([]string, error) {
	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	var targets []string

	for {
		input, err := line.Prompt(targetPrompt)

		switch {
		case errors.Is(err, io.EOF):
			return targets, nil
		case err != nil:
			return nil, errors.Join(ErrReadTargets, err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return targets, nil
		}

		line.AppendHistory(input)

		targets = append(targets, input)
	}
}
