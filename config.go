package carousel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultInterval is the autoplay cadence.
	DefaultInterval = 2 * time.Second
	// DefaultSettleDelay is the wait before rewinding from the trailing
	// padding slot.
	DefaultSettleDelay = 1 * time.Second

	// DefaultConfigFile is the file LoadConfig looks for when given no path.
	DefaultConfigFile = "carousel.toml"
)

// Config represents the carousel.toml configuration file.
type Config struct {
	Autoplay           bool          `toml:"autoplay" yaml:"autoplay"`
	IntervalSeconds    float64       `toml:"interval_seconds" yaml:"interval_seconds"`
	SettleDelaySeconds float64       `toml:"settle_delay_seconds" yaml:"settle_delay_seconds"`
	Items              []string      `toml:"items" yaml:"items"`
	Surface            SurfaceConfig `toml:"surface" yaml:"surface"`
}

// SurfaceConfig tunes the scroll surface the carousel drives.
type SurfaceConfig struct {
	// Programmatic scroll animation length in milliseconds
	AnimationMS int `toml:"animation_ms" yaml:"animation_ms"`
	// Easing name for programmatic scrolls (linear, ease-out, ease-out-quad, cubic, ...)
	Easing string `toml:"easing" yaml:"easing"`
	// Drag-release snap spring
	SpringFrequency float64 `toml:"spring_frequency" yaml:"spring_frequency"`
	SpringDamping   float64 `toml:"spring_damping" yaml:"spring_damping"`
	// Release velocity, in pages per second, that flips to the adjacent
	// page regardless of drag distance
	FlingPagesPerSecond float64 `toml:"fling_pages_per_second" yaml:"fling_pages_per_second"`
}

// DefaultConfig returns the configuration of the stock carousel: four
// symbol images advancing every two seconds.
func DefaultConfig() Config {
	return Config{
		Autoplay:           true,
		IntervalSeconds:    DefaultInterval.Seconds(),
		SettleDelaySeconds: DefaultSettleDelay.Seconds(),
		Items: []string{
			"snowflake",
			"key.fill",
			"fanblades.fill",
			"car.fill",
		},
		Surface: SurfaceConfig{
			AnimationMS:         250,
			Easing:              "ease-out",
			SpringFrequency:     8.0,
			SpringDamping:       1.0,
			FlingPagesPerSecond: 1.5,
		},
	}
}

// Interval returns the autoplay cadence as a duration.
func (c Config) Interval() time.Duration {
	return seconds(c.IntervalSeconds)
}

// SettleDelay returns the rewind delay as a duration.
func (c Config) SettleDelay() time.Duration {
	return seconds(c.SettleDelaySeconds)
}

// Validate rejects impossible values and fills zero values with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if c.IntervalSeconds < 0 {
		return fmt.Errorf("invalid interval_seconds %v", c.IntervalSeconds)
	}
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = def.IntervalSeconds
	}
	if c.SettleDelaySeconds < 0 {
		return fmt.Errorf("invalid settle_delay_seconds %v", c.SettleDelaySeconds)
	}
	if c.SettleDelaySeconds == 0 {
		c.SettleDelaySeconds = def.SettleDelaySeconds
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("config has no items: %w", ErrInvalidInput)
	}
	for i, item := range c.Items {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("item %d is blank: %w", i, ErrInvalidInput)
		}
	}

	s := &c.Surface
	if s.AnimationMS < 0 {
		return fmt.Errorf("invalid surface.animation_ms %d", s.AnimationMS)
	}
	if s.AnimationMS == 0 {
		s.AnimationMS = def.Surface.AnimationMS
	}
	if s.Easing == "" {
		s.Easing = def.Surface.Easing
	}
	if s.SpringFrequency < 0 || s.SpringDamping < 0 || s.FlingPagesPerSecond < 0 {
		return errors.New("surface spring and fling values must not be negative")
	}
	if s.SpringFrequency == 0 {
		s.SpringFrequency = def.Surface.SpringFrequency
	}
	if s.SpringDamping == 0 {
		s.SpringDamping = def.Surface.SpringDamping
	}
	if s.FlingPagesPerSecond == 0 {
		s.FlingPagesPerSecond = def.Surface.FlingPagesPerSecond
	}

	return nil
}

// LoadConfig loads and validates the configuration at path, decoding YAML
// for .yaml/.yml files and TOML otherwise. An empty path means
// DefaultConfigFile. If the file doesn't exist, the defaults are returned.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path in the format its extension selects.
func SaveConfig(path string, config Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
