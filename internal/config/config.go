package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds all configurable paths and render settings of the material
// preview tool.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	RenderSize     int `json:"render_size"`
	Supersample    int `json:"supersample"`
	Workers        int `json:"workers"`
	SphereRings    int `json:"sphere_rings"`
	SphereSegments int `json:"sphere_segments"`
	SheetColumns   int `json:"sheet_columns"`

	// View rotation of the preview sphere, in degrees
	ViewYaw   float64 `json:"view_yaw"`
	ViewPitch float64 `json:"view_pitch"`

	// Energy check per material
	EnergySamples int   `json:"energy_samples"`
	Seed          int64 `json:"seed"`

	Light     LightSettings  `json:"light"`
	Materials []MaterialSpec `json:"materials"`
}

// LightSettings places the key light. Angles are in degrees.
type LightSettings struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	Intensity float64 `json:"intensity"`
	Ambient   float64 `json:"ambient"`
	Exposure  float64 `json:"exposure"`
}

// DefaultLight is a key light from the upper right.
func DefaultLight() LightSettings {
	return LightSettings{Azimuth: 35, Elevation: 40, Intensity: 3, Ambient: 0.08, Exposure: 1}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. BaseDir defaults to the
// directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Size      int
	Workers   int
	Samples   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Samples > 0 {
		c.EnergySamples = flags.Samples
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	if c.TextureDir == "" {
		c.TextureDir = c.BaseDir
	} else if !filepath.IsAbs(c.TextureDir) {
		c.TextureDir = filepath.Join(c.BaseDir, c.TextureDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "previews")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.SphereRings <= 0 {
		c.SphereRings = 48
	}
	if c.SphereSegments <= 0 {
		c.SphereSegments = 96
	}
	if c.SheetColumns <= 0 {
		c.SheetColumns = 4
	}
	if c.EnergySamples <= 0 {
		c.EnergySamples = 10000
	}
	if c.Seed == 0 {
		c.Seed = 1
	}

	if c.Light == (LightSettings{}) {
		c.Light = DefaultLight()
	}
	if c.Light.Intensity <= 0 {
		c.Light.Intensity = DefaultLight().Intensity
	}
	if c.Light.Exposure <= 0 {
		c.Light.Exposure = DefaultLight().Exposure
	}

	if len(c.Materials) == 0 {
		c.Materials = DefaultMaterials()
	}
}

var (
	// ErrMaterialName is returned for empty, duplicate or path-like names.
	ErrMaterialName = errors.New("config: invalid material name")
)

// Validate checks material names, which double as output file names.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Materials))
	for i, m := range c.Materials {
		name := strings.TrimSpace(m.Name)
		switch {
		case name == "":
			return fmt.Errorf("%w: material %d has no name", ErrMaterialName, i)
		case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
			return fmt.Errorf("%w: %q", ErrMaterialName, m.Name)
		case seen[name]:
			return fmt.Errorf("%w: duplicate %q", ErrMaterialName, m.Name)
		}
		seen[name] = true
	}
	return nil
}
