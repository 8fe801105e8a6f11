package lightgrid

import "github.com/go-gl/mathgl/mgl32"

// Sector is the read-only view of a world sector the grid needs. The grid
// keys its per-sector state by Sector identity, so implementations must be
// comparable (pointer receivers are the norm).
type Sector interface {
	BoundaryCount() int
	AmbientColor() mgl32.Vec3 // RGB, each channel in [0,1]
	LightLevel() float32      // [0,1]
	FloorHeight() float32
	CeilingHeight() float32
	HasSkyMaskedFloor() bool
	HasSkyMaskedCeiling() bool
}

// Bounds is an axis-aligned rectangle in world space.
type Bounds struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

func (b Bounds) Size() mgl32.Vec2 {
	return b.Max.Sub(b.Min)
}

// World resolves points to sectors. SectorAt returns nil for points outside
// every sector. It is only used while building the lattice.
type World interface {
	Bounds() Bounds
	SectorAt(p mgl32.Vec2) Sector
}

// LightAdaptation is the renderer's tone-mapping correction. Delta returns
// the amount added to a colour channel at query time.
type LightAdaptation interface {
	Delta(channel float32) float32
}

type LightAdaptationFunc func(channel float32) float32

func (f LightAdaptationFunc) Delta(channel float32) float32 { return f(channel) }

type noAdaptation struct{}

func (noAdaptation) Delta(float32) float32 { return 0 }

// Channel selects colour channels in a LightColorChanged event.
type Channel uint8

const (
	ChannelRed Channel = 1 << iota
	ChannelGreen
	ChannelBlue

	AllChannels = ChannelRed | ChannelGreen | ChannelBlue
)

type EventKind uint8

const (
	LightLevelChanged EventKind = iota
	LightColorChanged
)

func (k EventKind) String() string {
	switch k {
	case LightLevelChanged:
		return "LightLevelChanged"
	case LightColorChanged:
		return "LightColorChanged"
	default:
		return "Unknown"
	}
}

// LightingChangeEvent announces that a sector's light level or colour was
// edited. The sector has already been updated when the event is sent; the
// old values are informational.
type LightingChangeEvent struct {
	Kind        EventKind
	Sector      Sector
	OldLevel    float32
	OldColor    mgl32.Vec3
	ChannelMask Channel
}

func LevelChange(s Sector, oldLevel float32) LightingChangeEvent {
	return LightingChangeEvent{Kind: LightLevelChanged, Sector: s, OldLevel: oldLevel}
}

func ColorChange(s Sector, oldColor mgl32.Vec3, mask Channel) LightingChangeEvent {
	return LightingChangeEvent{Kind: LightColorChanged, Sector: s, OldColor: oldColor, ChannelMask: mask}
}
