package rectworld

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightgrid"
)

type Sector struct {
	name       string
	rect       lightgrid.Bounds
	level      float32
	color      mgl32.Vec3
	floor      float32
	ceiling    float32
	skyFloor   bool
	skyCeiling bool
	boundaries int

	lookups atomic.Int64
}

func (s *Sector) Name() string { return s.name }

func (s *Sector) contains(p mgl32.Vec2) bool {
	return p.X() >= s.rect.Min.X() && p.X() <= s.rect.Max.X() &&
		p.Y() >= s.rect.Min.Y() && p.Y() <= s.rect.Max.Y()
}

func (s *Sector) BoundaryCount() int { return s.boundaries }

func (s *Sector) AmbientColor() mgl32.Vec3 {
	s.lookups.Add(1)
	return s.color
}

func (s *Sector) LightLevel() float32 {
	s.lookups.Add(1)
	return s.level
}

func (s *Sector) FloorHeight() float32      { return s.floor }
func (s *Sector) CeilingHeight() float32    { return s.ceiling }
func (s *Sector) HasSkyMaskedFloor() bool   { return s.skyFloor }
func (s *Sector) HasSkyMaskedCeiling() bool { return s.skyCeiling }

// SetLightLevel changes the level and returns the event announcing it.
func (s *Sector) SetLightLevel(level float32) lightgrid.LightingChangeEvent {
	old := s.level
	s.level = level
	return lightgrid.LevelChange(s, old)
}

// SetColor changes the colour and returns the event announcing it, with the
// mask naming the channels that differ.
func (s *Sector) SetColor(c mgl32.Vec3) lightgrid.LightingChangeEvent {
	old := s.color
	var mask lightgrid.Channel
	for i, ch := range []lightgrid.Channel{lightgrid.ChannelRed, lightgrid.ChannelGreen, lightgrid.ChannelBlue} {
		if old[i] != c[i] {
			mask |= ch
		}
	}
	s.color = c
	return lightgrid.ColorChange(s, old, mask)
}
