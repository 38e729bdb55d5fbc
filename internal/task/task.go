// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/20142995/command-runner/internal/catalog"
)

var (
	// ErrConfiguration is returned when a job cannot be built from its inputs.
	// Nothing is scheduled when it occurs.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoTargets is returned when the target list is empty.
	ErrNoTargets = errors.New("no targets given")
	// ErrNoCommands is returned when no command template is selected.
	ErrNoCommands = errors.New("no commands selected")
)

// Task is one command line to run against one target.
type Task struct {
	Target   string
	Template catalog.Template
	Command  string // Template with the target substituted
}

// String returns the task label used in logs.
func (t Task) String() string {
	return t.Template.Name + "(" + t.Target + ")"
}

// Expand builds the target-major cross product of targets and templates.
func Expand(targets []string, templates []catalog.Template) ([]Task, error) {
	if len(targets) == 0 {
		return nil, errors.Join(ErrConfiguration, ErrNoTargets)
	}

	if len(templates) == 0 {
		return nil, errors.Join(ErrConfiguration, ErrNoCommands)
	}

	for _, tmpl := range templates {
		if err := tmpl.Check(); err != nil {
			return nil, errors.Join(ErrConfiguration, err)
		}
	}

	tasks := make([]Task, 0, len(targets)*len(templates))

	for _, target := range targets {
		for _, tmpl := range templates {
			cmd, err := tmpl.Render(target)
			if err != nil {
				return nil, errors.Join(ErrConfiguration, fmt.Errorf("target %q: %w", target, err))
			}

			tasks = append(tasks, Task{Target: target, Template: tmpl, Command: cmd})
		}
	}

	return tasks, nil
}

// ParseTargets splits newline separated text into trimmed targets, dropping blank lines.
func ParseTargets(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	targets := make([]string, 0, len(lines))

	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			targets = append(targets, l)
		}
	}

	return targets
}
