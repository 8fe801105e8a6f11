package lightgrid

import "github.com/go-gl/mathgl/mgl32"

// Evaluate returns the ambient colour at p (z is ignored). Blocks waiting for
// recomputation report the colour they had before the change. The light
// adaptation correction is added per channel.
func (g *Grid) Evaluate(p mgl32.Vec3) mgl32.Vec3 {
	if !g.cfg.Enabled || len(g.blocks) == 0 {
		return mgl32.Vec3{}
	}
	b := &g.blocks[g.CoordinateOf(p).Index(g.width)]
	if !b.Resolved() {
		return mgl32.Vec3{}
	}
	c := b.current()
	for i := 0; i < 3; i++ {
		c[i] += g.adapt.Delta(c[i])
	}
	return c
}

// EvaluateLightLevel is the mean of the channels returned by Evaluate.
func (g *Grid) EvaluateLightLevel(p mgl32.Vec3) float32 {
	c := g.Evaluate(p)
	return (c[0] + c[1] + c[2]) / 3
}
