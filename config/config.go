// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Placement  PlacementConfig  `yaml:"placement"`
	Drawing    DrawingConfig    `yaml:"drawing"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// Width and height double as the simulation canvas size.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds ball geometry and motion parameters.
type SimulationConfig struct {
	DotSize       float64 `yaml:"dot_size"`        // Ball diameter in pixels
	EdgeSize      float64 `yaml:"edge_size"`       // Rendered edge width; widens the snap threshold
	VelocityScale float64 `yaml:"velocity_scale"`  // Max initial speed per axis (px/s)
	MinSpeedRatio float64 `yaml:"min_speed_ratio"` // Floor on the random magnitude, as a fraction of scale
	FixedDT       float64 `yaml:"fixed_dt"`        // Seconds per frame for the headless driver
}

// LifecycleConfig holds seek-and-freeze timing.
type LifecycleConfig struct {
	TimeoutMin  float64 `yaml:"timeout_min"`  // Earliest a ball starts seeking (s)
	TimeoutMax  float64 `yaml:"timeout_max"`  // Latest a ball starts seeking (s)
	SeekSpeed   float64 `yaml:"seek_speed"`   // Speed toward the target while seeking (px/s)
	SeekTimeout float64 `yaml:"seek_timeout"` // Seconds a seeking ball has before it is erased
}

// PlacementConfig holds rejection sampling parameters.
type PlacementConfig struct {
	MaxFailedAttempts int `yaml:"max_failed_attempts"` // Cumulative rejections before giving up
}

// DrawingConfig holds defaults for the drawing input.
type DrawingConfig struct {
	DefaultBallCount int       `yaml:"default_ball_count"` // Balls in the generated drawing when none is given
	DefaultColor     []float64 `yaml:"default_color"`      // RGBA for generated balls
	HighlightColor   []float64 `yaml:"highlight_color"`    // RGBA for the last generated ball
	MaxDownsample    int       `yaml:"max_downsample"`     // Largest stride tried after placement fails
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of simulated time per stats record
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width       float64 // Screen.Width as float64
	Height      float64 // Screen.Height as float64
	Radius      float64 // Simulation.DotSize / 2
	SnapDistSq  float64 // (EdgeSize + DotSize)^2 * 2
	TimeoutSpan float64 // Lifecycle.TimeoutMax - Lifecycle.TimeoutMin
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.ComputeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("invalid config: screen size %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Simulation.DotSize <= 0:
		return fmt.Errorf("invalid config: dot_size %v must be positive", c.Simulation.DotSize)
	case float64(c.Screen.Width) < c.Simulation.DotSize || float64(c.Screen.Height) < c.Simulation.DotSize:
		return fmt.Errorf("invalid config: screen size %dx%d is smaller than dot_size %v",
			c.Screen.Width, c.Screen.Height, c.Simulation.DotSize)
	case c.Lifecycle.TimeoutMax < c.Lifecycle.TimeoutMin:
		return fmt.Errorf("invalid config: timeout_max %v < timeout_min %v",
			c.Lifecycle.TimeoutMax, c.Lifecycle.TimeoutMin)
	case c.Placement.MaxFailedAttempts < 0:
		return fmt.Errorf("invalid config: max_failed_attempts %d is negative", c.Placement.MaxFailedAttempts)
	}
	return nil
}

// ComputeDerived recalculates values derived from the loaded config.
// Call it again after changing fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)
	c.Derived.Radius = c.Simulation.DotSize / 2

	reach := c.Simulation.EdgeSize + c.Simulation.DotSize
	c.Derived.SnapDistSq = reach * reach * 2

	c.Derived.TimeoutSpan = c.Lifecycle.TimeoutMax - c.Lifecycle.TimeoutMin

	// Colors fall back to the classic purple with a yellow marker
	if len(c.Drawing.DefaultColor) != 4 {
		c.Drawing.DefaultColor = []float64{0.6, 0.2, 0.8, 1.0}
	}
	if len(c.Drawing.HighlightColor) != 4 {
		c.Drawing.HighlightColor = []float64{1.0, 1.0, 0.0, 1.0}
	}
	if c.Drawing.MaxDownsample < 1 {
		c.Drawing.MaxDownsample = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
