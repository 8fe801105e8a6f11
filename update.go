package lightgrid

// kernel weights light diffusion over the 5x5 neighbourhood, indexed by
// (dy+2)*5 + dx+2. Weights are divided by kernelScale when applied.
var kernel = [5 * 5]float32{
	.1, .2, .25, .2, .1,
	.2, .4, .5, .4, .2,
	.25, .5, 1, .5, .25,
	.2, .4, .5, .4, .2,
	.1, .2, .25, .2, .1,
}

const kernelScale = 8

// Update recomputes every Changed block from the Contributor blocks around
// it, then clears all flags. Only blocks flagged since the previous pass are
// visited. It is a no-op when nothing is pending or the grid is disabled.
func (g *Grid) Update() {
	if !g.cfg.Enabled || !g.needsUpdate {
		return
	}

	recomputed := 0
	for _, i := range g.pending {
		b := &g.blocks[i]
		if b.flags&Changed != 0 {
			recomputed++
		}
		if b.flags&Contributor == 0 {
			continue
		}
		g.contribute(int(i))
	}
	for _, i := range g.pending {
		g.blocks[i].clearFlags()
	}

	g.logger.Debugf("update: %d flagged blocks, %d recomputed", len(g.pending), recomputed)
	g.metrics.observeUpdate(recomputed)
	g.pending = g.pending[:0]
	g.needsUpdate = false
}

// contribute spreads the light of block i's sector onto the Changed blocks
// of its neighbourhood.
func (g *Grid) contribute(i int) {
	src := &g.blocks[i]
	s := src.sector
	color := s.AmbientColor()
	level := s.LightLevel()

	c := coordinateOfIndex(i, g.width)
	for dy := -kernelRadius; dy <= kernelRadius; dy++ {
		for dx := -kernelRadius; dx <= kernelRadius; dx++ {
			x, y := c.X+dx, c.Y+dy
			if !g.inLattice(x, y) {
				continue
			}
			dst := &g.blocks[y*g.width+x]
			if dst.flags&Changed == 0 {
				continue
			}
			w := kernel[(dy+kernelRadius)*5+dx+kernelRadius] / kernelScale
			dst.applySector(color, level, w)
		}
	}
}
