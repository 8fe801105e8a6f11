package lightgrid

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// samplePattern lays out the sample points of one cell. Points on the
// size x size sub-lattice are addressed on a sub-lattice shared by the whole
// grid, so a point on a cell edge is the same point for both neighbours.
type samplePattern struct {
	size      int  // sub-lattice points per side, 0 when only the centre is sampled
	extra     bool // an explicit centre sample precedes the sub-lattice samples
	center    int  // index of the centre sample
	step      float32
	halfCell  float32
	cellSize  float32
	numPoints int
}

func newSamplePattern(count int, cellSize float32) samplePattern {
	p := samplePattern{cellSize: cellSize, halfCell: cellSize / 2, numPoints: count}
	if count <= 1 {
		p.extra = true
		p.numPoints = 1
		return p
	}
	if root := int(math.Sqrt(float64(count))); root*root == count {
		p.size = root
		p.center = (root/2)*root + root/2
	} else {
		p.size = int(math.Sqrt(float64(count - 1)))
		p.extra = true
	}
	p.step = cellSize / float32(p.size-1)
	return p
}

// gridPoints is the number of sub-lattice samples per cell.
func (p samplePattern) gridPoints() int {
	return p.size * p.size
}

// gridIndex returns the sample index of sub-lattice point (i, j).
func (p samplePattern) gridIndex(i, j int) int {
	k := j*p.size + i
	if p.extra {
		k++
	}
	return k
}

// point returns the world position of sample k of cell (x, y).
func (p samplePattern) point(origin mgl32.Vec2, x, y, k int) mgl32.Vec2 {
	if p.extra {
		if k == 0 {
			return mgl32.Vec2{
				origin.X() + float32(x)*p.cellSize,
				origin.Y() + float32(y)*p.cellSize,
			}
		}
		k--
	}
	i, j := k%p.size, k/p.size
	gx := x*(p.size-1) + i
	gy := y*(p.size-1) + j
	return mgl32.Vec2{
		origin.X() - p.halfCell + float32(gx)*p.step,
		origin.Y() - p.halfCell + float32(gy)*p.step,
	}
}

// sharedSample reports which earlier cell already resolved sample k of a
// cell: the left neighbour owns the left column, the lower neighbour the
// bottom row. ok is false when the point must be resolved.
func (p samplePattern) sharedSample(x, y, k int) (fromLeft bool, src int, ok bool) {
	if p.size < 2 {
		return false, 0, false
	}
	if p.extra {
		if k == 0 {
			return false, 0, false
		}
		k--
	}
	i, j := k%p.size, k/p.size
	if i == 0 && x > 0 {
		return true, p.gridIndex(p.size-1, j), true
	}
	if j == 0 && y > 0 {
		return false, p.gridIndex(i, p.size-1), true
	}
	return false, 0, false
}

type voteEntry struct {
	sector Sector
	hits   int
}

// vote picks the sector with the most hits. Ties between leaders go to the
// sector seen first, except that the centre sample wins whenever its sector
// has as many hits as the leader.
func vote(samples []Sector, center int, scratch []voteEntry) Sector {
	entries := scratch[:0]
	for _, s := range samples {
		if s == nil {
			continue
		}
		found := false
		for i := range entries {
			if entries[i].sector == s {
				entries[i].hits++
				found = true
				break
			}
		}
		if !found {
			entries = append(entries, voteEntry{sector: s, hits: 1})
		}
	}
	if len(entries) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].hits > entries[best].hits {
			best = i
		}
	}
	if c := samples[center]; c != nil && c != entries[best].sector {
		for _, e := range entries {
			if e.sector == c && e.hits == entries[best].hits {
				return c
			}
		}
	}
	return entries[best].sector
}
