package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-feederdata/pkg/dataset"
	"github.com/dd0wney/cluso-feederdata/pkg/export"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Width(16)

	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

func row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), fmt.Sprint(value))
}

// renderSummary formats the outcome of a build for the terminal.
func renderSummary(circuit string, ds *dataset.Dataset, written []export.Artifact, dest string) string {
	if circuit == "" {
		circuit = "(unnamed)"
	}

	points := 0
	if len(ds.Profiles) > 0 {
		points = len(ds.Profiles[0].Values)
	}

	rows := []string{
		titleStyle.Render("Feeder dataset " + circuit),
		"",
		row("Build", ds.BuildID),
		row("Loads", len(ds.LoadLabels)),
		row("Transformers", fmt.Sprintf("%d feeding loads, %d distribution, %d substation",
			len(ds.TransformerLabels), len(ds.DistributionTransformers()), len(ds.SubstationTransformers()))),
		row("Profiles", fmt.Sprintf("%d x %d points (%s, seed %d)", len(ds.Profiles), points, ds.Mode, ds.Seed)),
		row("Monitors", ds.Monitors.Len()),
	}

	if n := ds.DegenerateCount(); n > 0 {
		rows = append(rows, row("Degenerate", warnStyle.Render(fmt.Sprintf("%d constant profiles", n))))
	}
	if n := len(ds.Violations); n > 0 {
		rows = append(rows, row("Violations", warnStyle.Render(fmt.Sprintf("%d (see log)", n))))
	}

	rows = append(rows, "", row("Written to", dest))
	for _, a := range written {
		rows = append(rows, row("", mutedStyle.Render(fmt.Sprintf("%-28s %s", a.Name, formatBytes(a.Bytes)))))
	}

	return boxStyle.Render(strings.Join(rows, "\n"))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
