package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const maxBarWidth = 72

type progressMsg struct {
	done  int
	total int
}

type doneMsg struct {
	err error
}

type progressModel struct {
	title    string
	bar      progress.Model
	done     int
	total    int
	finished bool
	err      error
	cancel   context.CancelFunc
}

func newProgressModel(title string, cancel context.CancelFunc) progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = maxBarWidth
	return progressModel{title: title, bar: bar, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case progressMsg:
		// Substream workers report out of order.
		if msg.done > m.done {
			m.done = msg.done
		}
		m.total = msg.total

	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m progressModel) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.title) + "\n\n")
	b.WriteString("  " + m.bar.ViewAs(m.ratio()) + "\n")

	status := fmt.Sprintf("%d/%d loads", m.done, m.total)
	switch {
	case m.finished && m.err != nil:
		status = errorStyle.Render("failed: " + m.err.Error())
	case m.finished:
		status = okStyle.Render(status + " done")
	}
	b.WriteString("  " + mutedStyle.Render(status) + "\n")
	return b.String()
}
