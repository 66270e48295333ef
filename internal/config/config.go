package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fortune/internal/announce"
	"github.com/san-kum/fortune/internal/wheel"
)

const (
	DefaultScale          = 0.8
	DefaultMargin         = 8.0
	DefaultWindowMargin   = 20.0
	DefaultFrameRate      = 60
	DefaultResizeDebounce = 100 * time.Millisecond
	DefaultOpenDelay      = 100 * time.Millisecond
	DefaultLifetime       = 5 * time.Second
	DefaultFade           = 500 * time.Millisecond
	DefaultVolume         = 0.0
	DefaultTheme          = "cyberpunk"
	DefaultPreset         = "roster"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrBadPalette    = errors.New("config: palette needs at least one valid hex color")
	ErrBadDisplay    = errors.New("config: display parameters out of valid bounds")
)

// DefaultPalette is the two-color fill cycled by segment index.
var DefaultPalette = []string{"#BD4932", "#FFFAD5"}

type Config struct {
	Segments []string      `yaml:"segments"`
	Palette  []string      `yaml:"palette"`
	Theme    string        `yaml:"theme"`
	Seed     int64         `yaml:"seed"`
	Physics  PhysicsConfig `yaml:"physics"`
	Display  DisplayConfig `yaml:"display"`
	Sound    SoundConfig   `yaml:"sound"`
}

type PhysicsConfig struct {
	MinVelocity   float64 `yaml:"min_velocity"`
	MaxVelocity   float64 `yaml:"max_velocity"`
	TimeScale     float64 `yaml:"time_scale"`
	Friction      float64 `yaml:"friction"`
	StopThreshold float64 `yaml:"stop_threshold"`
	MaxTicks      int     `yaml:"max_ticks"`
}

type DisplayConfig struct {
	Scale          float64       `yaml:"scale"`
	Margin         float64       `yaml:"margin"`
	WindowMargin   float64       `yaml:"window_margin"`
	FrameRate      int           `yaml:"frame_rate"`
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
	OpenDelay      time.Duration `yaml:"open_delay"`
	Lifetime       time.Duration `yaml:"announce_lifetime"`
	Fade           time.Duration `yaml:"announce_fade"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

func DefaultConfig() *Config {
	return &Config{
		Segments: append([]string(nil), Presets[DefaultPreset].Segments...),
		Palette:  append([]string(nil), DefaultPalette...),
		Theme:    DefaultTheme,
		Physics: PhysicsConfig{
			MinVelocity:   wheel.DefaultMinVelocity,
			MaxVelocity:   wheel.DefaultMaxVelocity,
			TimeScale:     wheel.DefaultTimeScale,
			Friction:      wheel.DefaultFriction,
			StopThreshold: wheel.DefaultStopThreshold,
			MaxTicks:      wheel.DefaultMaxTicks,
		},
		Display: DisplayConfig{
			Scale:          DefaultScale,
			Margin:         DefaultMargin,
			WindowMargin:   DefaultWindowMargin,
			FrameRate:      DefaultFrameRate,
			ResizeDebounce: DefaultResizeDebounce,
			OpenDelay:      DefaultOpenDelay,
			Lifetime:       DefaultLifetime,
			Fade:           DefaultFade,
		},
		Sound: SoundConfig{Volume: DefaultVolume},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the segment list (and palette, when the preset has one).
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Segments = append([]string(nil), p.Segments...)
	if len(p.Palette) > 0 {
		c.Palette = append([]string(nil), p.Palette...)
	}
	return nil
}

func (c *Config) WheelPhysics() wheel.Physics {
	return wheel.Physics{
		MinVelocity:   c.Physics.MinVelocity,
		MaxVelocity:   c.Physics.MaxVelocity,
		TimeScale:     c.Physics.TimeScale,
		Friction:      c.Physics.Friction,
		StopThreshold: c.Physics.StopThreshold,
		MaxTicks:      c.Physics.MaxTicks,
	}
}

// Colors parses the palette into colors.
func (c *Config) Colors() ([]colorful.Color, error) {
	if len(c.Palette) == 0 {
		return nil, ErrBadPalette
	}
	out := make([]colorful.Color, 0, len(c.Palette))
	for _, hex := range c.Palette {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPalette, hex)
		}
		out = append(out, col)
	}
	return out, nil
}

// AnnounceTiming is the result overlay timeline.
func (c *Config) AnnounceTiming() announce.Timing {
	t := announce.DefaultTiming()
	t.Lifetime, t.Fade = c.Display.Lifetime, c.Display.Fade
	return t
}

// FrameInterval is the animation tick period.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Display.FrameRate)
}

// Validate checks everything the wheel needs before construction.
func (c *Config) Validate() error {
	if _, err := wheel.NewSegments(c.Segments); err != nil {
		return err
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if err := c.WheelPhysics().Validate(); err != nil {
		return err
	}
	d := c.Display
	switch {
	case d.Scale <= 0 || d.Scale > 1:
		return fmt.Errorf("%w: scale %.2f not in (0, 1]", ErrBadDisplay, d.Scale)
	case d.Margin < 0 || d.WindowMargin < 0:
		return fmt.Errorf("%w: negative margin", ErrBadDisplay)
	case d.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate %d", ErrBadDisplay, d.FrameRate)
	case d.Lifetime <= 0 || d.Fade < 0 || d.ResizeDebounce < 0 || d.OpenDelay < 0:
		return fmt.Errorf("%w: negative or zero timing", ErrBadDisplay)
	}
	if c.Sound.Volume < -10 || c.Sound.Volume > 2 {
		return fmt.Errorf("%w: volume %.2f not in [-10, 2]", ErrBadDisplay, c.Sound.Volume)
	}
	return nil
}
