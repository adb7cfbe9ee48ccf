package ui

import (
	"github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsResult reports what the user asked for this frame.
type ControlsResult struct {
	ShakeItUp bool
	Paused    bool
}

// ControlsPanel renders the buttons that drive the simulation.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	paused   bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Paused returns the pause toggle state.
func (c *ControlsPanel) Paused() bool {
	return c.paused
}

// TogglePause flips the pause toggle, for keyboard shortcuts.
func (c *ControlsPanel) TogglePause() {
	c.paused = !c.paused
}

// Draw renders the panel and returns the user's input.
func (c *ControlsPanel) Draw() ControlsResult {
	r := c.renderer
	padding := r.Theme.Padding
	buttonHeight := float32(24)
	inner := float32(c.width - padding*2)

	panelHeight := int32(buttonHeight)*2 + padding*3
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)

	shake := raygui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: buttonHeight}, "Shake It Up")
	y += buttonHeight + float32(padding)

	label := "Pause"
	if c.paused {
		label = "Resume"
	}
	c.paused = raygui.Toggle(rl.Rectangle{X: x, Y: y, Width: inner, Height: buttonHeight}, label, c.paused)

	return ControlsResult{
		ShakeItUp: shake,
		Paused:    c.paused,
	}
}
