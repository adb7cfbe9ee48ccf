package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/redraw/game"
	"github.com/pthm-cable/redraw/renderer"
)

// InspectorWidth is the width of the ball inspector panel.
const InspectorWidth = 220

// Inspector shows the state of one clicked ball.
type Inspector struct {
	renderer *Renderer
	panelX   int32
	panelY   int32

	selected    int
	hasSelected bool
}

// NewInspector creates an inspector anchored to the right edge of the screen.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		panelX:   screenWidth - InspectorWidth - 10,
		panelY:   10,
	}
}

// HandleInput selects the ball under a left click. Right click or Escape
// deselects.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, positions []float32, hitRadius float32) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	// Clicks on the panel itself are ignored
	if ins.hasSelected &&
		int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+InspectorWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+ins.panelHeight() {
		return
	}

	if i, ok := PickBall(mouseX, mouseY, positions, hitRadius); ok {
		ins.selected = i
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected ball index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// PickBall returns the ball closest to (x, y) within hitRadius.
func PickBall(x, y float32, positions []float32, hitRadius float32) (int, bool) {
	best := -1
	bestDist := hitRadius * hitRadius
	for i := 0; i+1 < len(positions); i += 2 {
		dx := x - positions[i]
		dy := y - positions[i+1]
		if d := dx*dx + dy*dy; d <= bestDist {
			best = i / 2
			bestDist = d
		}
	}
	return best, best >= 0
}

func (ins *Inspector) panelHeight() int32 {
	t := ins.renderer.Theme
	return t.LineHeight*9 + t.Padding*2
}

// Draw renders the selected ball's state and rings it on the canvas.
func (ins *Inspector) Draw(ball game.BallState, radius float32) {
	if !ins.hasSelected {
		return
	}

	r := ins.renderer
	padding := r.Theme.Padding
	x := ins.panelX + padding
	y := ins.panelY + padding

	if ball.Position != game.ErasedPosition {
		rl.DrawCircleLines(int32(ball.Position.X), int32(ball.Position.Y), radius+4, rl.White)
		rl.DrawLine(int32(ball.Position.X), int32(ball.Position.Y),
			int32(ball.Target.X), int32(ball.Target.Y), rl.Color{R: 255, G: 255, B: 255, A: 60})
	}

	r.DrawPanel(ins.panelX, ins.panelY, InspectorWidth, ins.panelHeight())

	rl.DrawText(fmt.Sprintf("Ball #%d", ball.Index), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	c := ball.Color
	rl.DrawRectangle(x+InspectorWidth-padding*2-12, y, 12, 12, renderer.ToColor([]float32{c.R, c.G, c.B, c.A}))
	y += r.Theme.LineHeight + 4

	life := ball.Lifecycle
	y = r.DrawLabelValue(x, y, "State", ball.State().String())
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", ball.Position.X, ball.Position.Y))
	y = r.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("%.1f, %.1f", ball.Velocity.X, ball.Velocity.Y))
	y = r.DrawLabelValue(x, y, "Target", fmt.Sprintf("%.1f, %.1f", ball.Target.X, ball.Target.Y))
	y = r.DrawLabelValue(x, y, "Timeout", fmt.Sprintf("%.1fs", life.Timeout))
	if life.Seeking() || life.Erased {
		r.DrawLabelValue(x, y, "Seeking", fmt.Sprintf("since %.1fs", life.SeekStart))
	}
}
