package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pthm-cable/redraw/telemetry"
)

var (
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// runSummary collects stats windows for the end-of-run report.
type runSummary struct {
	settled    []float64
	collisions int
	shakeUps   int
}

// Record is a game.Options.StatsCallback.
func (r *runSummary) Record(stats telemetry.WindowStats) {
	r.settled = append(r.settled, stats.Counts.Settled()*100)
	r.collisions += stats.Collisions
	r.shakeUps += stats.ShakeUps
}

// Render formats the report for a terminal.
func (r *runSummary) Render(runID string, frames int, elapsed float64, counts telemetry.Counts) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("REDRAW "+runID) + "\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frames", fmt.Sprintf("%d", frames))
	row("Elapsed", fmt.Sprintf("%.1fs", elapsed))
	row("Balls", fmt.Sprintf("%d", counts.Total()))
	row("Stuck", fmt.Sprintf("%d", counts.Stuck))
	row("Erased", fmt.Sprintf("%d", counts.Erased))
	row("Moving", fmt.Sprintf("%d", counts.Active+counts.Seeking))
	row("Collisions", fmt.Sprintf("%d", r.collisions))
	row("Shake-ups", fmt.Sprintf("%d", r.shakeUps))

	if len(r.settled) > 1 {
		chart := asciigraph.Plot(r.settled,
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
			asciigraph.Caption("Settled % per stats window"),
		)
		s.WriteString("\n" + chart + "\n")
	}

	return summaryStyle.Render(s.String())
}
