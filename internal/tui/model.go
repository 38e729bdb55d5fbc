// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"github.com/20142995/command-runner/internal/scheduler"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minViewport   = 3
	ellipsis      = "..."
)

// Job is the part of a scheduler job the UI drives.
type Job interface {
	ID() string
	Stop()
	State() scheduler.State
	Live() []scheduler.LiveTask
	Progress() (int, int)
}

var _ Job = (*scheduler.Job)(nil)

// Model represents the TUI application state.
type Model struct {
	job      Job
	width    int
	height   int
	quitting bool
	finished bool // A completed or stopped event arrived
	stopped  bool // The job was stopped, by the user or a signal

	percent   int
	completed int
	total     int
	failed    int

	live   []scheduler.LiveTask
	blocks []string

	viewport viewport.Model
	bar      progressbar.Model
	spinner  spinner.Model
	styles   *Styles
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title     lipgloss.Style
	Running   lipgloss.Style
	Success   lipgloss.Style
	Failed    lipgloss.Style
	Output    lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style
	BlockEven lipgloss.Style
	BlockOdd  lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")),
		BlockEven: lipgloss.NewStyle().
			Background(lipgloss.Color("235")),
		BlockOdd: lipgloss.NewStyle().
			Background(lipgloss.Color("238")),
	}
}

// NewModel creates a new TUI model for the job.
func NewModel(job Job) *Model {
	m := &Model{
		job:      job,
		width:    defaultWidth,
		height:   defaultHeight,
		viewport: viewport.New(defaultWidth, defaultHeight),
		bar:      progressbar.New(progressbar.WithDefaultGradient()),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:   NewStyles(),
	}

	if job != nil {
		m.completed, m.total = job.Progress()
	}

	m.resize()

	return m
}

// blockStyle alternates the background of successive output blocks.
func (m *Model) blockStyle(i int) lipgloss.Style {
	if i%2 == 0 {
		return m.styles.BlockEven
	}

	return m.styles.BlockOdd
}

// liveRows is the number of lines reserved for running tasks.
func (m *Model) liveRows() int {
	if m.job == nil {
		return 0
	}

	return min(len(m.live), max(m.height/4, 1)) //nolint:mnd
}

// resize fits the progress bar and the output pane to the window.
// Reserved: title, progress, live tasks, border, status and help lines.
func (m *Model) resize() {
	reserved := 8 + m.liveRows() //nolint:mnd

	m.bar.Width = max(m.width-4, minViewport) //nolint:mnd
	m.viewport.Width = max(m.width-2, minViewport)
	m.viewport.Height = max(m.height-reserved, minViewport)

	m.refreshContent()
}

// refreshContent re-renders every output block at the current width.
// The pane follows new output unless the user scrolled up.
func (m *Model) refreshContent() {
	follow := m.viewport.AtBottom()

	rendered := make([]string, len(m.blocks))
	for i, b := range m.blocks {
		rendered[i] = m.blockStyle(i).Width(m.viewport.Width).Render(b)
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, rendered...))

	if follow {
		m.viewport.GotoBottom()
	}
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	if n <= len(ellipsis) {
		return string(r[:max(n, 0)])
	}

	return string(r[:n-len(ellipsis)]) + ellipsis
}
