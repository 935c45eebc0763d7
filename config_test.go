package tiled

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ZOffsetProperty != "zOffset" {
		t.Errorf("ZOffsetProperty = %q, want zOffset", cfg.ZOffsetProperty)
	}
	if !cfg.pixelSnap() {
		t.Error("pixel snapping should default to on")
	}
	if cfg.Debug || len(cfg.ImportRoots) != 0 || len(cfg.ContentDirs) != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
import_roots:
  - assets/imported
  - assets/imported_v2
content_dirs: [content/tilesets, content/images]
pixel_snap: false
debug: true
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.ImportRoots) != 2 || cfg.ImportRoots[1] != "assets/imported_v2" {
		t.Errorf("ImportRoots = %v", cfg.ImportRoots)
	}
	if len(cfg.ContentDirs) != 2 || cfg.ContentDirs[0] != "content/tilesets" {
		t.Errorf("ContentDirs = %v", cfg.ContentDirs)
	}
	if cfg.pixelSnap() {
		t.Error("pixel_snap: false was ignored")
	}
	if !cfg.Debug {
		t.Error("debug: true was ignored")
	}
	if cfg.ZOffsetProperty != DefaultZOffsetProperty {
		t.Errorf("ZOffsetProperty = %q, want default", cfg.ZOffsetProperty)
	}
}

func TestParseConfig_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`z_offset_property: ""`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ZOffsetProperty != DefaultZOffsetProperty || !cfg.pixelSnap() {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := ParseConfig([]byte("import_roots: {")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiled.yaml", "z_offset_property: layer_z\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ZOffsetProperty != "layer_z" {
		t.Errorf("ZOffsetProperty = %q", cfg.ZOffsetProperty)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
