package tiled

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultZOffsetProperty is the layer property added to layerIndex*10 to
// form a placed tile's draw-order key.
const DefaultZOffsetProperty = "zOffset"

// Config controls where a Loader searches for referenced documents and how
// it reports problems.
type Config struct {
	// ImportRoots are tried in order, after the path relative to the
	// referencing document, each joined with the reference path.
	ImportRoots []string `yaml:"import_roots"`

	// ContentDirs are searched, in order, for the reference's bare file
	// name once every other location has missed.
	ContentDirs []string `yaml:"content_dirs"`

	// ZOffsetProperty names the per-layer numeric draw-order offset.
	ZOffsetProperty string `yaml:"z_offset_property"`

	// PixelSnap snaps placed tile positions to the source pixel grid.
	// Defaults to true.
	PixelSnap *bool `yaml:"pixel_snap,omitempty"`

	// Debug enables diagnostics on stderr.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config with no extra search locations and pixel
// snapping enabled.
func DefaultConfig() Config {
	snap := true
	return Config{
		ZOffsetProperty: DefaultZOffsetProperty,
		PixelSnap:       &snap,
	}
}

// LoadConfig reads a YAML config file. Fields left out of the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tiled: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tiled: parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.ZOffsetProperty == "" {
		c.ZOffsetProperty = DefaultZOffsetProperty
	}
	if c.PixelSnap == nil {
		snap := true
		c.PixelSnap = &snap
	}
}

func (c *Config) pixelSnap() bool {
	return c.PixelSnap == nil || *c.PixelSnap
}
