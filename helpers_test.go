package lightgrid

import "github.com/go-gl/mathgl/mgl32"

type stubSector struct {
	level      float32
	color      mgl32.Vec3
	floor      float32
	ceiling    float32
	skyFloor   bool
	skyCeiling bool
	boundaries int
	lookups    int
}

func newStubSector(level float32, color mgl32.Vec3) *stubSector {
	return &stubSector{level: level, color: color, ceiling: 64, boundaries: 4}
}

func (s *stubSector) BoundaryCount() int { return s.boundaries }
func (s *stubSector) AmbientColor() mgl32.Vec3 {
	s.lookups++
	return s.color
}
func (s *stubSector) LightLevel() float32 {
	s.lookups++
	return s.level
}
func (s *stubSector) FloorHeight() float32      { return s.floor }
func (s *stubSector) CeilingHeight() float32    { return s.ceiling }
func (s *stubSector) HasSkyMaskedFloor() bool   { return s.skyFloor }
func (s *stubSector) HasSkyMaskedCeiling() bool { return s.skyCeiling }

// funcWorld resolves points with a closure.
type funcWorld struct {
	bounds  Bounds
	resolve func(p mgl32.Vec2) Sector
	calls   int
}

func (w *funcWorld) Bounds() Bounds { return w.bounds }
func (w *funcWorld) SectorAt(p mgl32.Vec2) Sector {
	w.calls++
	return w.resolve(p)
}

// splitWorld is a strip split at x: points left of it belong to left.
func splitWorld(width, x float32, left, right Sector) *funcWorld {
	return &funcWorld{
		bounds: Bounds{Max: mgl32.Vec2{width, 0}},
		resolve: func(p mgl32.Vec2) Sector {
			if p.X() < 0 || p.X() > width {
				return nil
			}
			if p.X() < x {
				return left
			}
			return right
		},
	}
}
