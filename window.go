package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/game"
	"github.com/pthm-cable/redraw/renderer"
	"github.com/pthm-cable/redraw/ui"
)

const controlsLegend = "[S] Shake it up | [Space] Pause | [O] Outlines | [P] Perf | [H] History | Click: inspect | [F11] Fullscreen"

// runWindow drives the simulation from the raylib frame loop.
func runWindow(cfg *config.Config, sim *game.Simulation, maxFrames int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Redraw")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	balls := renderer.NewBallRenderer(sim.DotSize(), cfg.Derived.Width, cfg.Derived.Height)
	hud := ui.NewHUD(10, 10, 200)
	controls := ui.NewControlsPanel(10, 0, 200)
	perf := ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 10)
	inspector := ui.NewInspector(int32(cfg.Screen.Width))
	history := ui.NewHistoryPanel(10, int32(cfg.Screen.Height)-110, 280, 60, 1)
	radius := float32(sim.DotSize() / 2)

	outline := false
	showPerf := false
	showHistory := true
	now := 0.0

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyF11) {
			rl.ToggleFullscreen()
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			controls.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyS) {
			sim.ShakeItUp()
		}
		if rl.IsKeyPressed(rl.KeyO) {
			outline = !outline
			balls.SetOutline(outline)
		}
		if rl.IsKeyPressed(rl.KeyP) {
			showPerf = !showPerf
		}
		if rl.IsKeyPressed(rl.KeyH) {
			showHistory = !showHistory
		}
		mouse := rl.GetMousePosition()
		inspector.HandleInput(mouse.X, mouse.Y, sim.Positions(), radius+3)

		// The clock only runs while unpaused
		if !controls.Paused() {
			dt := float64(rl.GetFrameTime())
			now += dt
			sim.Advance(dt, now)
		}
		history.Update(sim.Elapsed(), sim.Counts())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		balls.Draw(sim.Positions(), sim.Colors())

		bottom := hud.Draw(ui.HUDData{
			Title:   "Redraw",
			Counts:  sim.Counts(),
			Elapsed: sim.Elapsed(),
			FPS:     rl.GetFPS(),
			Paused:  controls.Paused(),
		})
		controls.SetPosition(10, bottom+8)
		if controls.Draw().ShakeItUp {
			sim.ShakeItUp()
		}
		if i, ok := inspector.Selected(); ok {
			inspector.Draw(sim.Ball(i), radius)
		} else if showPerf {
			perf.Draw(sim.PerfStats())
		}
		if showHistory {
			history.Draw()
		}
		hud.DrawControls(int32(cfg.Screen.Height), controlsLegend)

		rl.EndDrawing()

		if maxFrames > 0 && sim.Frame() >= maxFrames {
			break
		}
	}
}
