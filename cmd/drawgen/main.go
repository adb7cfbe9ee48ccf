// Command drawgen writes drawing files for the simulator: from an image or
// SVG, or a random drawing when no input is given.
//
// Usage: go run ./cmd/drawgen -in sketch.png -out sketch.json
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file for canvas size and defaults (empty = use defaults)")
	in := flag.String("in", "", "Input image (png, jpeg, gif, bmp, webp or svg; empty = random drawing)")
	out := flag.String("out", "", "Output drawing JSON")
	title := flag.String("title", "", "Drawing title (empty = input file name)")
	clearFlag := flag.String("clear", "#ffffff", "Background color to skip, as #rrggbb")
	threshold := flag.Int("threshold", game.DefaultClearThreshold, "Per-channel distance from the background color to skip")
	step := flag.Int("step", 1, "Sample every Nth pixel")
	width := flag.Int("width", 0, "Rescale width before sampling (0 = canvas width for svg, image width otherwise)")
	height := flag.Int("height", 0, "Rescale height before sampling (0 = canvas height for svg, image height otherwise)")
	count := flag.Int("count", 0, "Balls in a random drawing (0 = config default)")
	seed := flag.Int64("seed", 0, "RNG seed for random drawings (0 = time-based)")
	flag.Parse()

	if *out == "" {
		log.Fatal("--out is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	var (
		drawing *game.Drawing
		err     error
	)
	if *in == "" {
		drawing, err = randomDrawing(cfg, *count, *seed)
	} else {
		drawing, err = imageDrawing(cfg, *in, *clearFlag, *threshold, *step, *width, *height)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *title != "" {
		drawing.Title = *title
	}
	if err := drawing.Validate(); err != nil {
		log.Fatalf("generated drawing is unusable: %v", err)
	}
	if err := drawing.Save(*out); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %s: %d balls", *out, drawing.Len())
}

func randomDrawing(cfg *config.Config, count int, seed int64) (*game.Drawing, error) {
	if count <= 0 {
		count = cfg.Drawing.DefaultBallCount
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	d, err := game.RandomDrawing(rng, count, cfg.Derived.Width, cfg.Derived.Height,
		cfg.Simulation.DotSize, cfg.Placement.MaxFailedAttempts)
	if err != nil {
		return nil, err
	}
	d.Recolor(cfg.Drawing.DefaultColor, cfg.Drawing.HighlightColor)
	return d, nil
}

func imageDrawing(cfg *config.Config, path, clearHex string, threshold, step, width, height int) (*game.Drawing, error) {
	clearColor, err := game.ParseHexColor(clearHex)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// SVGs need a raster size up front
	svgW, svgH := width, height
	if svgW <= 0 || svgH <= 0 {
		svgW, svgH = cfg.Screen.Width, cfg.Screen.Height
	}
	img, err := game.DecodeImage(f, path, svgW, svgH)
	if err != nil {
		return nil, err
	}

	d := game.FromImage(img, game.ImageOptions{
		Clear:     clearColor,
		Threshold: threshold,
		Step:      step,
		Width:     width,
		Height:    height,
	})
	d.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d, nil
}
