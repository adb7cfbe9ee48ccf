package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/redraw/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Counts  telemetry.Counts
	Elapsed float64
	FPS     int32
	Paused  bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := h.width - padding*2

	panelHeight := lineHeight*8 + padding*2
	r.DrawPanel(h.x, h.y, h.width, panelHeight)

	x := h.x + padding
	y := h.y + padding

	rl.DrawText(data.Title, x, y, 16, rl.White)
	y += lineHeight + 4

	c := data.Counts
	y = r.DrawLabelValue(x, y, "Active", fmt.Sprintf("%d", c.Active))
	y = r.DrawLabelValue(x, y, "Seeking", fmt.Sprintf("%d", c.Seeking))
	y = r.DrawLabelValue(x, y, "Stuck", fmt.Sprintf("%d", c.Stuck))
	y = r.DrawLabelValue(x, y, "Erased", fmt.Sprintf("%d", c.Erased))
	y = r.DrawBar(x, y, "Settled", float32(c.Settled()), inner)
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs | %d fps", data.Elapsed, data.FPS))

	if data.Paused {
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
	}

	return h.y + panelHeight
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %6s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
