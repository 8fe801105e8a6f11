// Package rectworld is a minimal sector world made of axis-aligned
// rectangles. It backs the dump tool and the grid tests.
package rectworld

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/lightgrid"
)

type RectSpec struct {
	Min [2]float32 `yaml:"min"`
	Max [2]float32 `yaml:"max"`
}

func Rect(x0, y0, x1, y1 float32) RectSpec {
	return RectSpec{Min: [2]float32{x0, y0}, Max: [2]float32{x1, y1}}
}

func (r RectSpec) bounds() lightgrid.Bounds {
	return lightgrid.Bounds{Min: mgl32.Vec2(r.Min), Max: mgl32.Vec2(r.Max)}
}

func (r RectSpec) empty() bool {
	return r.Min == r.Max
}

type SectorSpec struct {
	Name       string     `yaml:"name"`
	Rect       RectSpec   `yaml:"rect"`
	LightLevel float32    `yaml:"light_level"`
	Color      [3]float32 `yaml:"color"`
	Floor      float32    `yaml:"floor"`
	Ceiling    float32    `yaml:"ceiling"`
	SkyFloor   bool       `yaml:"sky_floor"`
	SkyCeiling bool       `yaml:"sky_ceiling"`
	Boundaries *int       `yaml:"boundaries"` // defaults to 4
}

// ChangeSpec is a scripted lighting edit applied by World.ApplyScript.
type ChangeSpec struct {
	Sector     string      `yaml:"sector"`
	LightLevel *float32    `yaml:"light_level"`
	Color      *[3]float32 `yaml:"color"`
}

type MapFile struct {
	Bounds  RectSpec     `yaml:"bounds"`
	Sectors []SectorSpec `yaml:"sectors"`
	Changes []ChangeSpec `yaml:"changes"`
}

// World resolves points to the first added sector whose rectangle contains
// them, edges included.
type World struct {
	bounds   lightgrid.Bounds
	sectors  []*Sector
	byName   map[string]*Sector
	script   []ChangeSpec
	resolves atomic.Int64
}

func New(bounds lightgrid.Bounds) *World {
	return &World{bounds: bounds, byName: make(map[string]*Sector)}
}

func (w *World) Add(spec SectorSpec) *Sector {
	boundaries := 4
	if spec.Boundaries != nil {
		boundaries = *spec.Boundaries
	}
	s := &Sector{
		name:       spec.Name,
		rect:       spec.Rect.bounds(),
		level:      spec.LightLevel,
		color:      mgl32.Vec3(spec.Color),
		floor:      spec.Floor,
		ceiling:    spec.Ceiling,
		skyFloor:   spec.SkyFloor,
		skyCeiling: spec.SkyCeiling,
		boundaries: boundaries,
	}
	w.sectors = append(w.sectors, s)
	if spec.Name != "" {
		w.byName[spec.Name] = s
	}
	return s
}

func (w *World) Bounds() lightgrid.Bounds { return w.bounds }

func (w *World) SectorAt(p mgl32.Vec2) lightgrid.Sector {
	w.resolves.Add(1)
	for _, s := range w.sectors {
		if s.contains(p) {
			return s
		}
	}
	return nil
}

// Resolves counts SectorAt calls.
func (w *World) Resolves() int64 { return w.resolves.Load() }

// LightingLookups sums the light level and colour reads of every sector.
func (w *World) LightingLookups() int64 {
	var n int64
	for _, s := range w.sectors {
		n += s.lookups.Load()
	}
	return n
}

func (w *World) Sector(name string) *Sector { return w.byName[name] }
func (w *World) Sectors() []*Sector         { return w.sectors }

// ApplyScript performs the scripted changes of a loaded map file and returns
// the resulting change events in order.
func (w *World) ApplyScript() ([]lightgrid.LightingChangeEvent, error) {
	var events []lightgrid.LightingChangeEvent
	for _, c := range w.script {
		s := w.byName[c.Sector]
		if s == nil {
			return events, fmt.Errorf("change references unknown sector %q", c.Sector)
		}
		if c.LightLevel != nil {
			events = append(events, s.SetLightLevel(*c.LightLevel))
		}
		if c.Color != nil {
			events = append(events, s.SetColor(mgl32.Vec3(*c.Color)))
		}
	}
	return events, nil
}

// Parse builds a world from a YAML map description. Missing bounds default
// to the union of the sector rectangles.
func Parse(data []byte) (*World, error) {
	var mf MapFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	if len(mf.Sectors) == 0 {
		return nil, fmt.Errorf("map has no sectors")
	}

	bounds := mf.Bounds
	if bounds.empty() {
		bounds = mf.Sectors[0].Rect
		for _, s := range mf.Sectors[1:] {
			for i := 0; i < 2; i++ {
				bounds.Min[i] = min(bounds.Min[i], s.Rect.Min[i])
				bounds.Max[i] = max(bounds.Max[i], s.Rect.Max[i])
			}
		}
	}

	w := New(bounds.bounds())
	for _, spec := range mf.Sectors {
		w.Add(spec)
	}
	w.script = mf.Changes
	return w, nil
}

func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
