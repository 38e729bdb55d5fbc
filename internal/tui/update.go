// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/20142995/command-runner/internal/process"
	"github.com/20142995/command-runner/internal/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	refreshInterval         = 200 * time.Millisecond
	commandDurationRounding = 100 * time.Millisecond
	percentScale            = 100.0
)

// EventMsg wraps a job event for the tea framework.
type EventMsg struct {
	Event progress.Event
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

		return m, nil

	case EventMsg:
		m.processEvent(msg.Event)
		return m, nil

	case tickMsg:
		if m.job != nil {
			rows := m.liveRows()
			m.live = m.job.Live()

			if m.liveRows() != rows {
				m.resize()
			}
		}

		if m.finished {
			return m, nil
		}

		return m, tick()

	case tea.QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

// handleKeyPress processes keyboard input. Keys not bound here scroll the output pane.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stop()
		m.quitting = true

		return m, tea.Quit
	case "s":
		m.stop()
		return m, nil
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *Model) stop() {
	if m.job == nil || m.finished {
		return
	}

	m.stopped = true
	m.job.Stop()
}

// processEvent folds a job event into the model.
func (m *Model) processEvent(event progress.Event) {
	switch event.Type {
	case progress.EventOutput:
		if res := event.Data.Result; res != nil && res.Status() != process.StatusSuccess {
			m.failed++
		}

		m.blocks = append(m.blocks, event.Data.Text)
		m.refreshContent()

	case progress.EventProgress:
		m.percent = event.Data.Percent
		m.completed = event.Data.Completed
		m.total = event.Data.Total

	case progress.EventCompleted:
		m.finished = true
		m.percent = event.Data.Percent
		m.completed = event.Data.Completed
		m.total = event.Data.Total
		m.live = nil

	case progress.EventStopped:
		m.finished = true
		m.stopped = true
		m.live = nil
	}
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var view strings.Builder

	title := "Command Runner"
	if m.job != nil {
		title += " " + m.job.ID()
	}

	view.WriteString(m.styles.Title.Render(title))
	view.WriteString("\n")
	view.WriteString(m.bar.ViewAs(float64(m.percent) / percentScale))
	view.WriteString("\n")

	m.renderLive(&view)

	view.WriteString(m.styles.Border.Render(m.viewport.View()))
	view.WriteString("\n")
	view.WriteString(m.renderStatusBar())
	view.WriteString("\n")

	help := "↑/↓ or j/k to scroll, 's' to stop, 'q' to quit"
	if m.finished {
		help = "↑/↓ or j/k to scroll, 'q' to quit and return to terminal"
	}

	view.WriteString(m.styles.Help.Render(help))

	return view.String()
}

// renderLive writes one line per running task, oldest first.
func (m *Model) renderLive(b *strings.Builder) {
	rows := m.liveRows()

	for _, lt := range m.live[:rows] {
		left := fmt.Sprintf("%s %s (%v)", m.spinner.View(), lt.Task.String(),
			time.Since(lt.Started).Round(commandDurationRounding))

		width := max(m.width/2, minViewport) //nolint:mnd
		left = truncate(left, width)

		b.WriteString(m.styles.Running.Render(left))

		if lt.LastLine != "" {
			b.WriteString("  ")
			b.WriteString(m.styles.Output.Render(truncate(lt.LastLine, max(m.width-width-2, minViewport))))
		}

		b.WriteString("\n")
	}

	if hidden := len(m.live) - rows; hidden > 0 {
		b.WriteString(m.styles.Help.Render(fmt.Sprintf("... and %d more running", hidden)))
		b.WriteString("\n")
	}
}

func (m *Model) renderStatusBar() string {
	status := fmt.Sprintf("%d/%d done, %d failed", m.completed, m.total, m.failed)

	switch {
	case m.finished && m.stopped:
		return m.styles.Failed.Render("⏹  Stopped: " + status)
	case m.finished && m.failed > 0:
		return m.styles.Failed.Render("⚠️  Completed with errors: " + status)
	case m.finished:
		return m.styles.Success.Render("✅ Completed: " + status)
	case m.stopped:
		return m.styles.Running.Render("Stopping: " + status)
	default:
		return m.styles.Running.Render(fmt.Sprintf("Running %d: %s", len(m.live), status))
	}
}
