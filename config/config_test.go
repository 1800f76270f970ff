package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("config = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.yaml")
	data := "dim_fade: 50ms\nrotation_timeout: 5s\nmax_surfaces: 32\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DimFade.Duration != 50*time.Millisecond {
		t.Errorf("dim_fade = %v, want 50ms", cfg.DimFade.Duration)
	}
	if cfg.RotationTimeout.Duration != 5*time.Second {
		t.Errorf("rotation_timeout = %v, want 5s", cfg.RotationTimeout.Duration)
	}
	if cfg.MaxSurfaces != 32 {
		t.Errorf("max_surfaces = %d, want 32", cfg.MaxSurfaces)
	}
	// Untouched keys keep their defaults.
	if cfg.TokenFade.Duration != 300*time.Millisecond {
		t.Errorf("token_fade = %v, want default 300ms", cfg.TokenFade.Duration)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.yaml")
	if err := os.WriteFile(path, []byte("dim_fade: fast\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unparsable duration")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slate.yaml")
	if err := os.WriteFile(path, []byte("dim_fade: [50ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}
