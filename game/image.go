package game

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultClearThreshold is the per-channel distance under which a pixel
// counts as background.
const DefaultClearThreshold = 10

// ImageOptions controls how an image becomes a drawing.
type ImageOptions struct {
	Clear     color.RGBA // Background color; pixels close to it are skipped
	Threshold int        // Per-channel background distance (0 = DefaultClearThreshold)
	Step      int        // Sample every Step-th pixel in each direction (0 = every pixel)
	Width     int        // Rescale to this size before sampling (0 = keep)
	Height    int
}

// FromImage turns every non-background pixel into a ball. Positions are
// normalized to the image size and colors are RGB bytes.
func FromImage(img image.Image, opts ImageOptions) *Drawing {
	if opts.Width > 0 && opts.Height > 0 {
		img = scaleImage(img, opts.Width, opts.Height)
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultClearThreshold
	}
	step := opts.Step
	if step < 1 {
		step = 1
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	d := &Drawing{}

	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if c.A == 0 || isClear(c, opts.Clear, threshold) {
				continue
			}
			d.Positions = append(d.Positions,
				float64(x-b.Min.X)/w,
				float64(y-b.Min.Y)/h,
			)
			d.Colors = append(d.Colors, float64(c.R), float64(c.G), float64(c.B))
		}
	}

	return d
}

func isClear(c, clear color.RGBA, threshold int) bool {
	return absDiff(c.R, clear.R) < threshold &&
		absDiff(c.G, clear.G) < threshold &&
		absDiff(c.B, clear.B) < threshold
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func scaleImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// DecodeImage reads a raster image, or rasterizes an SVG when name ends in
// .svg. SVGs are rendered at width x height.
func DecodeImage(r io.Reader, name string, width, height int) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return rasterizeSVG(r, width, height)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

func rasterizeSVG(r io.Reader, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterizing svg: size %dx%d must be positive", width, height)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Save writes the drawing in the stored envelope format.
func (d *Drawing) Save(path string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(storedDrawing{
		Title:     d.Title,
		Data:      &drawingData{Positions: d.Positions, Colors: d.Colors},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("encoding drawing: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing drawing: %w", err)
	}
	return nil
}
