// Package config handles converter configuration loading and management.
package config

import "time"

// Config holds all converter settings.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Batch   BatchConfig   `yaml:"batch"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds the defaults for optional conversion arguments.
// Positional command-line values override these.
type ConvertConfig struct {
	Scale      float64 `yaml:"scale"`
	Roll       float64 `yaml:"roll"`  // Degrees about X
	Pitch      float64 `yaml:"pitch"` // Degrees about Y
	Yaw        float64 `yaml:"yaw"`   // Degrees about Z
	ObjectName string  `yaml:"object_name"`
}

// BatchConfig holds directory conversion settings.
type BatchConfig struct {
	Workers   int    `yaml:"workers"`   // 0 = one per CPU
	Extension string `yaml:"extension"` // Output file extension
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Scale:      1.0,
			ObjectName: "collision",
		},
		Batch: BatchConfig{
			Workers:   0,
			Extension: ".3ds",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
