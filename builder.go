package lightgrid

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// kernelRadius is the half-width of the 5x5 neighbourhood used for both
// dirty marking and light diffusion.
const kernelRadius = 2

// sectorIndex holds the precomputed cells a sector's lighting change touches:
// the first changed entries are recomputed, the rest only contribute.
type sectorIndex struct {
	blocks  []int32
	changed int
}

func (si *sectorIndex) changedBlocks() []int32     { return si.blocks[:si.changed] }
func (si *sectorIndex) contributorBlocks() []int32 { return si.blocks[si.changed:] }

type buildStats struct {
	resolved int // resolver calls
	reused   int // samples copied from a neighbouring cell
	blocks   int // cells with an owning sector
	sectors  int
	elapsed  time.Duration
}

// build lays out the lattice and fills the per-sector index lists. It runs
// once per grid and may take a while on big maps.
func (g *Grid) build(world World, samples int) buildStats {
	start := time.Now()
	n := g.width * g.height
	if n <= 0 || int64(g.width)*int64(g.height) > math.MaxInt32 {
		panic(fmt.Sprintf("lightgrid: lattice %dx%d does not fit 32-bit indices", g.width, g.height))
	}

	stats := g.resolveBlocks(world, samples)
	g.buildSectorIndices()

	stats.sectors = len(g.sectors)
	stats.elapsed = time.Since(start)
	return stats
}

func (g *Grid) resolveBlocks(world World, samples int) buildStats {
	var stats buildStats
	pattern := newSamplePattern(samples, g.cellSize)
	per := pattern.numPoints

	g.blocks = make([]Block, g.width*g.height)
	prevRow := make([]Sector, g.width*per)
	curRow := make([]Sector, g.width*per)
	scratch := make([]voteEntry, 0, per)

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := curRow[x*per : (x+1)*per]
			for k := range cell {
				if fromLeft, src, ok := pattern.sharedSample(x, y, k); ok {
					if fromLeft {
						cell[k] = curRow[(x-1)*per+src]
					} else {
						cell[k] = prevRow[x*per+src]
					}
					stats.reused++
					continue
				}
				cell[k] = resolveSample(world, pattern.point(g.origin, x, y, k))
				stats.resolved++
			}

			b := newBlock(vote(cell, pattern.center, scratch))
			if b.Resolved() {
				stats.blocks++
			}
			g.blocks[y*g.width+x] = b
		}
		prevRow, curRow = curRow, prevRow
	}
	return stats
}

// resolveSample treats sectors without boundaries as misses.
func resolveSample(world World, p mgl32.Vec2) Sector {
	s := world.SectorAt(p)
	if s == nil || s.BoundaryCount() == 0 {
		return nil
	}
	return s
}

// buildSectorIndices runs the two marking passes for every sector that owns
// at least one cell: owned cells dilated by the kernel radius become the
// changed set, and the kernel-radius ring around that set the contributors.
func (g *Grid) buildSectorIndices() {
	owned := make(map[Sector][]int32)
	g.sectors = g.sectors[:0]
	for i := range g.blocks {
		s := g.blocks[i].sector
		if s == nil {
			continue
		}
		if _, ok := owned[s]; !ok {
			g.sectors = append(g.sectors, s)
		}
		owned[s] = append(owned[s], int32(i))
	}

	changed := newCellSet(len(g.blocks))
	contrib := newCellSet(len(g.blocks))
	g.index = make(map[Sector]*sectorIndex, len(g.sectors))
	for _, s := range g.sectors {
		changed.Reset()
		contrib.Reset()

		for _, i := range owned[s] {
			g.forNeighborhood(int(i), func(j int) {
				changed.Mark(j)
			})
		}
		list := changed.AppendTo(make([]int32, 0, changed.Len()))
		for _, i := range list {
			g.forNeighborhood(int(i), func(j int) {
				if !changed.Has(j) {
					contrib.Mark(j)
				}
			})
		}
		list = contrib.AppendTo(list)

		g.index[s] = &sectorIndex{blocks: list, changed: changed.Len()}
	}
}

// forNeighborhood calls fn for every in-lattice cell within kernelRadius of
// cell i, including i itself.
func (g *Grid) forNeighborhood(i int, fn func(j int)) {
	c := coordinateOfIndex(i, g.width)
	for dy := -kernelRadius; dy <= kernelRadius; dy++ {
		for dx := -kernelRadius; dx <= kernelRadius; dx++ {
			x, y := c.X+dx, c.Y+dy
			if !g.inLattice(x, y) {
				continue
			}
			fn(y*g.width + x)
		}
	}
}
