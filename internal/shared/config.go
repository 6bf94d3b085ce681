package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Presenter PresenterConfig `toml:"presenter"`
	Input     InputConfig     `toml:"input"`
	Audio     AudioConfig     `toml:"audio"`
	Database  DatabaseConfig  `toml:"database"`
	Log       LogConfig       `toml:"log"`
}

// PresenterConfig controls the terminal presenter.
type PresenterConfig struct {
	Story      string  `toml:"story"`       // Story file; empty uses the built-in story
	FPS        int     `toml:"fps"`         // Animation frame rate
	WheelStep  float64 `toml:"wheel_step"`  // Delta reported per wheel notch
	CellHeight float64 `toml:"cell_height"` // Pixels per terminal row for drag gestures
}

// InputConfig holds the input normalization and animation constants.
type InputConfig struct {
	WheelWindowMS   int     `toml:"wheel_window_ms"`
	WheelDivisor    float64 `toml:"wheel_divisor"`
	WheelFactor     float64 `toml:"wheel_factor"`
	TouchDivisor    float64 `toml:"touch_divisor"`
	TouchThreshold  float64 `toml:"touch_threshold"`
	AnimationMS     int     `toml:"animation_ms"`
	StepBackDelayMS int     `toml:"step_back_delay_ms"`
}

// AudioConfig contains background audio settings.
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Path       string  `toml:"path"`   // WAV file; empty plays a synthesized drone
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains log file settings used while the TUI is running.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Millis converts a millisecond count from the config into a [time.Duration].
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// FrameInterval returns the delay between animation frames.
func (p PresenterConfig) FrameInterval() time.Duration {
	fps := p.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the presenter cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Presenter.FPS < 0:
		return fmt.Errorf("%w: presenter.fps must not be negative", ErrInvalidConfig)
	case c.Presenter.CellHeight < 0:
		return fmt.Errorf("%w: presenter.cell_height must not be negative", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be between 0 and 1", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
