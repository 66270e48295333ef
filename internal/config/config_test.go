package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/fortune/internal/wheel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Segments) != 26 {
		t.Errorf("expected 26 segments, got %d", len(cfg.Segments))
	}
	if len(cfg.Palette) != 2 {
		t.Errorf("expected 2 palette colors, got %d", len(cfg.Palette))
	}
	if cfg.Physics.Friction != 0.98 {
		t.Errorf("expected friction 0.98, got %f", cfg.Physics.Friction)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("unexpected frame interval %v", cfg.FrameInterval())
	}
}

func TestDefaultConfig_DoesNotAliasPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segments[0] = "changed"
	if Presets[DefaultPreset].Segments[0] == "changed" {
		t.Error("default config shares the preset slice")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("letters")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(p.Segments) != 4 {
		t.Errorf("expected 4 segments, got %d", len(p.Segments))
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("yesno"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(cfg.Segments) != 2 || cfg.Palette[0] != "#2E8B57" {
		t.Errorf("preset not applied: %+v %+v", cfg.Segments, cfg.Palette)
	}

	cfg = DefaultConfig()
	if err := cfg.ApplyPreset("letters"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.Palette[0] != DefaultPalette[0] {
		t.Errorf("preset without palette replaced it: %v", cfg.Palette)
	}

	if err := cfg.ApplyPreset("missing"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no segments", func(c *Config) { c.Segments = nil }, wheel.ErrNoSegments},
		{"no palette", func(c *Config) { c.Palette = nil }, ErrBadPalette},
		{"bad hex", func(c *Config) { c.Palette = []string{"red"} }, ErrBadPalette},
		{"no friction", func(c *Config) { c.Physics.Friction = 1 }, wheel.ErrBadPhysics},
		{"zero scale", func(c *Config) { c.Display.Scale = 0 }, ErrBadDisplay},
		{"zero frame rate", func(c *Config) { c.Display.FrameRate = 0 }, ErrBadDisplay},
		{"zero lifetime", func(c *Config) { c.Display.Lifetime = 0 }, ErrBadDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.yaml")

	cfg := DefaultConfig()
	cfg.Segments = []string{"x", "y", "z"}
	cfg.Display.ResizeDebounce = 250 * time.Millisecond
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Segments) != 3 || loaded.Segments[2] != "z" {
		t.Errorf("segments not round-tripped: %v", loaded.Segments)
	}
	if loaded.Display.ResizeDebounce != 250*time.Millisecond {
		t.Errorf("debounce not round-tripped: %v", loaded.Display.ResizeDebounce)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "segments: [red, black]\nphysics:\n  friction: 0.9\ndisplay:\n  open_delay: 250ms\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Friction != 0.9 {
		t.Errorf("expected friction 0.9, got %f", cfg.Physics.Friction)
	}
	if cfg.Physics.TimeScale != wheel.DefaultTimeScale {
		t.Errorf("time scale lost its default: %f", cfg.Physics.TimeScale)
	}
	if cfg.Display.OpenDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms open delay, got %v", cfg.Display.OpenDelay)
	}
	if len(cfg.Palette) != 2 {
		t.Errorf("palette lost its default: %v", cfg.Palette)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAnnounceTiming(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Lifetime = 3 * time.Second
	cfg.Display.Fade = 250 * time.Millisecond

	tm := cfg.AnnounceTiming()
	if tm.Lifetime != 3*time.Second || tm.Fade != 250*time.Millisecond {
		t.Errorf("timing = %+v", tm)
	}
	if tm.Enter != 100*time.Millisecond {
		t.Errorf("enter delay = %v", tm.Enter)
	}
	if tm.Total() != 3250*time.Millisecond {
		t.Errorf("total = %v", tm.Total())
	}
}
