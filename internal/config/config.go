// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire engine configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Surface SurfaceConfig `mapstructure:"surface" yaml:"surface"`
	Sandbox SandboxConfig `mapstructure:"sandbox" yaml:"sandbox"`
	Input   InputConfig   `mapstructure:"input" yaml:"input"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
}

// LoggerConfig configures the zap logger and its rotating file sink.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SurfaceConfig fixes the native frame size. On Windows a zero value is
// replaced by the primary display metrics at startup; everywhere else the
// defaults stand in for a display.
type SurfaceConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// SandboxConfig locates the persisted canvas/state file pair. One
// execution engine instance per file pair; there is no cross-process
// coordination beyond atomic replace.
type SandboxConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	CanvasFile string `mapstructure:"canvas_file" yaml:"canvas_file"`
	StateFile  string `mapstructure:"state_file" yaml:"state_file"`
}

// InputConfig tunes physical input pacing. The delays are an intentional
// reliability trade-off: input drivers drop events that arrive too fast.
type InputConfig struct {
	MoveSteps      int           `mapstructure:"move_steps" yaml:"move_steps"`
	StepDelay      time.Duration `mapstructure:"step_delay" yaml:"step_delay"`
	ClickDelay     time.Duration `mapstructure:"click_delay" yaml:"click_delay"`
	ButtonGap      time.Duration `mapstructure:"button_gap" yaml:"button_gap"`
	DoubleClickGap time.Duration `mapstructure:"double_click_gap" yaml:"double_click_gap"`
	DragPause      time.Duration `mapstructure:"drag_pause" yaml:"drag_pause"`
}

// EngineConfig carries the per-turn behavior defaults.
type EngineConfig struct {
	PhysicalExecution bool `mapstructure:"physical_execution" yaml:"physical_execution"`
	Sandbox           bool `mapstructure:"sandbox" yaml:"sandbox"`
	Marks             bool `mapstructure:"marks" yaml:"marks"`
}

// SetDefaults initializes default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "franz")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	v.SetDefault("surface.width", 1920)
	v.SetDefault("surface.height", 1080)

	v.SetDefault("sandbox.dir", ".")
	v.SetDefault("sandbox.canvas_file", "sandbox_canvas.bmp")
	v.SetDefault("sandbox.state_file", "sandbox_state.json")

	v.SetDefault("input.move_steps", 20)
	v.SetDefault("input.step_delay", 10*time.Millisecond)
	v.SetDefault("input.click_delay", 120*time.Millisecond)
	v.SetDefault("input.button_gap", 20*time.Millisecond)
	v.SetDefault("input.double_click_gap", 60*time.Millisecond)
	v.SetDefault("input.drag_pause", 60*time.Millisecond)

	v.SetDefault("engine.physical_execution", false)
	v.SetDefault("engine.sandbox", false)
	v.SetDefault("engine.marks", true)
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper unmarshals and validates a configuration.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks for sane values.
func (c *Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("surface.width and surface.height must be positive")
	}
	if c.Input.MoveSteps <= 0 {
		return fmt.Errorf("input.move_steps must be a positive integer")
	}
	if c.Input.StepDelay < 0 || c.Input.ClickDelay < 0 {
		return fmt.Errorf("input delays must not be negative")
	}
	if c.Sandbox.CanvasFile == "" || c.Sandbox.StateFile == "" {
		return fmt.Errorf("sandbox.canvas_file and sandbox.state_file are required")
	}
	return nil
}
