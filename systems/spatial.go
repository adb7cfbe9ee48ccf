// Package systems provides the physics building blocks of the simulation.
package systems

import (
	"github.com/tidwall/rtree"
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is an axis-aligned bounding box tagged with the ball it belongs to.
type Box struct {
	r2.Box
	Index int
}

// BoxAround returns the square of side size centered on (x, y).
func BoxAround(x, y, size float64, index int) Box {
	half := size / 2
	return Box{
		Box: r2.Box{
			Min: r2.Vec{X: x - half, Y: y - half},
			Max: r2.Vec{X: x + half, Y: y + half},
		},
		Index: index,
	}
}

// Center returns the midpoint of the box.
func (b Box) Center() r2.Vec {
	return r2.Vec{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Overlaps reports whether two boxes intersect. Touching edges count.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// SpatialIndex is an R-tree of ball bounding boxes used for broad phase
// collision detection and placement rejection. It is cheap to rebuild and the
// simulation builds a fresh one every frame.
type SpatialIndex struct {
	tree rtree.RTreeG[int]
}

// NewSpatialIndex creates an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{}
}

// Load inserts all boxes.
func (s *SpatialIndex) Load(boxes []Box) {
	for _, b := range boxes {
		s.Insert(b)
	}
}

// Insert adds a single box.
func (s *SpatialIndex) Insert(b Box) {
	s.tree.Insert(bounds(b))
}

// Len returns the number of boxes in the index.
func (s *SpatialIndex) Len() int {
	return s.tree.Len()
}

// Search appends every box intersecting b to dst and returns the result.
// Reuse dst across calls to avoid allocations.
func (s *SpatialIndex) Search(b Box, dst []Box) []Box {
	min, max, _ := bounds(b)
	s.tree.Search(min, max, func(min, max [2]float64, index int) bool {
		dst = append(dst, Box{
			Box: r2.Box{
				Min: r2.Vec{X: min[0], Y: min[1]},
				Max: r2.Vec{X: max[0], Y: max[1]},
			},
			Index: index,
		})
		return true
	})
	return dst
}

// Collides reports whether any box in the index intersects b.
func (s *SpatialIndex) Collides(b Box) bool {
	found := false
	min, max, _ := bounds(b)
	s.tree.Search(min, max, func(_, _ [2]float64, _ int) bool {
		found = true
		return false
	})
	return found
}

func bounds(b Box) (min, max [2]float64, index int) {
	return [2]float64{b.Min.X, b.Min.Y}, [2]float64{b.Max.X, b.Max.Y}, b.Index
}
