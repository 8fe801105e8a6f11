package lightgrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GridCoordinate addresses a lattice cell.
type GridCoordinate struct {
	X, Y int
}

func (c GridCoordinate) Index(width int) int {
	return c.Y*width + c.X
}

func coordinateOfIndex(i, width int) GridCoordinate {
	return GridCoordinate{X: i % width, Y: i / width}
}

// latticeDimensions returns ceil(extent/cellSize)+1 cells per axis.
func latticeDimensions(b Bounds, cellSize float32) (int, int) {
	size := b.Size()
	w := int(math.Ceil(float64(size.X()/cellSize))) + 1
	h := int(math.Ceil(float64(size.Y()/cellSize))) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// CoordinateOf maps a world point to the nearest cell, clamped away from the
// outermost ring so the 5x5 neighbourhood math stays inside the lattice.
// Lattices too thin to have an interior clamp to their full range.
func (g *Grid) CoordinateOf(p mgl32.Vec3) GridCoordinate {
	x := cellIndex(p.X()-g.origin.X(), g.cellSize)
	y := cellIndex(p.Y()-g.origin.Y(), g.cellSize)
	return GridCoordinate{
		X: clampInterior(x, g.width),
		Y: clampInterior(y, g.height),
	}
}

// Cell centres sit on lattice points, so the nearest centre is a rounding.
func cellIndex(offset, cellSize float32) int {
	v := math.Round(float64(offset / cellSize))
	// NaN and huge offsets still clamp
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

func clampInterior(v, dim int) int {
	lo, hi := 1, dim-2
	if dim < 3 {
		lo, hi = 0, dim-1
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *Grid) inLattice(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}
