package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/redraw/telemetry"
)

const (
	// History buffer size (number of samples to keep)
	historySize = 120

	seriesActive  = 0
	seriesSeeking = 1
	seriesStuck   = 2
	seriesErased  = 3
	numSeries     = 4
)

var (
	colorGraphBg     = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid   = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder = rl.Color{R: 60, G: 60, B: 70, A: 255}

	seriesColors = [numSeries]rl.Color{
		{R: 100, G: 149, B: 237, A: 255}, // Active: cornflower blue
		{R: 255, G: 200, B: 80, A: 255},  // Seeking: amber
		{R: 80, G: 180, B: 80, A: 255},   // Stuck: green
		{R: 255, G: 100, B: 80, A: 255},  // Erased: red-orange
	}
	seriesNames = [numSeries]string{"active", "seeking", "stuck", "erased"}
)

// HistoryPanel graphs lifecycle counts over time.
type HistoryPanel struct {
	x, y, w, h int32

	// Ring buffer of samples
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	interval   float64
	lastSample float64
	total      int
}

// NewHistoryPanel creates a panel that samples counts every interval
// seconds of simulated time.
func NewHistoryPanel(x, y, w, h int32, interval float64) *HistoryPanel {
	p := &HistoryPanel{x: x, y: y, w: w, h: h, interval: interval, lastSample: -interval}
	for i := range p.history {
		p.history[i] = make([]float64, historySize)
	}
	return p
}

// Update records a sample if the interval has passed.
func (p *HistoryPanel) Update(elapsed float64, counts telemetry.Counts) {
	if elapsed-p.lastSample < p.interval {
		return
	}
	p.lastSample = elapsed
	p.total = counts.Total()

	idx := p.historyIndex
	p.history[seriesActive][idx] = float64(counts.Active)
	p.history[seriesSeeking][idx] = float64(counts.Seeking)
	p.history[seriesStuck][idx] = float64(counts.Stuck)
	p.history[seriesErased][idx] = float64(counts.Erased)

	// Advance ring buffer
	p.historyIndex = (p.historyIndex + 1) % historySize
	if p.historyCount < historySize {
		p.historyCount++
	}
}

// Samples returns how many samples are held.
func (p *HistoryPanel) Samples() int {
	return p.historyCount
}

// Draw renders the graph and legend.
func (p *HistoryPanel) Draw() {
	x, y, w, h := p.x, p.y, p.w, p.h

	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)
	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}

	if p.historyCount >= 2 && p.total > 0 {
		for series := 0; series < numSeries; series++ {
			p.drawSeriesLine(series)
		}
	}

	rl.DrawText(fmt.Sprintf("%d", p.total), x+2, y+2, 9, rl.Gray)
	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*70
		rl.DrawRectangle(itemX, y+h+4, 10, 10, seriesColors[i])
		rl.DrawText(seriesNames[i], itemX+14, y+h+3, 11, rl.LightGray)
	}
}

// drawSeriesLine draws one series scaled to the ball count.
func (p *HistoryPanel) drawSeriesLine(series int) {
	x, y, w, h := p.x, p.y, p.w, p.h
	maxVal := float64(p.total)

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		idx := (p.historyIndex - p.historyCount + i + historySize) % historySize
		v := p.history[series][idx]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32(v/maxVal*float64(h))

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, seriesColors[series])
		}
		prevX, prevY = px, py
	}
}
