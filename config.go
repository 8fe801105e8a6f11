package lightgrid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCellSize           uint32 = 31
	MinCellSize               uint32 = 8
	MaxCellSize               uint32 = 1024
	DefaultMultisampleQuality uint8  = 1
	MaxMultisampleQuality     uint8  = 7

	// ConfigEnv names the environment variable LoadConfig falls back to.
	ConfigEnv = "LIGHTGRID_CONFIG"
)

// sampleCounts maps a multisample quality level to samples per cell.
var sampleCounts = [MaxMultisampleQuality + 1]int{1, 5, 9, 17, 25, 37, 49, 65}

// GridConfig is read by New and never mutated afterwards. Changing any field
// at runtime means building a new grid (see Manager.Reconfigure).
type GridConfig struct {
	Enabled            bool   `yaml:"enabled"`
	CellSize           uint32 `yaml:"cell_size"`
	MultisampleQuality uint8  `yaml:"multisample_quality"`
}

func DefaultConfig() GridConfig {
	return GridConfig{
		Enabled:            true,
		CellSize:           DefaultCellSize,
		MultisampleQuality: DefaultMultisampleQuality,
	}
}

// Normalize clamps out-of-range values and reports what it changed.
func (c GridConfig) Normalize() (GridConfig, []string) {
	var notes []string
	if c.CellSize < MinCellSize {
		notes = append(notes, fmt.Sprintf("cell_size %d raised to %d", c.CellSize, MinCellSize))
		c.CellSize = MinCellSize
	} else if c.CellSize > MaxCellSize {
		notes = append(notes, fmt.Sprintf("cell_size %d lowered to %d", c.CellSize, MaxCellSize))
		c.CellSize = MaxCellSize
	}
	if c.MultisampleQuality > MaxMultisampleQuality {
		notes = append(notes, fmt.Sprintf("multisample_quality %d lowered to %d", c.MultisampleQuality, MaxMultisampleQuality))
		c.MultisampleQuality = MaxMultisampleQuality
	}
	return c, notes
}

// SampleCount returns the number of sample points per cell for the
// (clamped) multisample quality.
func (c GridConfig) SampleCount() int {
	q := c.MultisampleQuality
	if q > MaxMultisampleQuality {
		q = MaxMultisampleQuality
	}
	return sampleCounts[q]
}

// LoadConfig reads a YAML grid config. An empty path falls back to the
// LIGHTGRID_CONFIG environment variable and then to DefaultConfig. Keys
// missing from the file keep their default values.
func LoadConfig(path string) (GridConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read grid config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse grid config %s: %w", path, err)
	}
	return cfg, nil
}
