// Package config loads tuicore-demo's runtime configuration: log level and
// format, and the counter's starting value, step, and viewport size.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the full configuration surface for the demo binary.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Counter CounterConfig `mapstructure:"counter"`
}

// LogConfig controls the engine's diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or text
}

// CounterConfig seeds the demo application's counter view.
type CounterConfig struct {
	Start   int `mapstructure:"start"`
	Step    int `mapstructure:"step"`
	Cols    int `mapstructure:"cols"`
	Rows    int `mapstructure:"rows"`
	Frames  int `mapstructure:"frames"` // loaded and validated (>= 0); the demo run does not read it
}

// Load reads configuration from configPath, falling back to ./tuicore-demo.yaml
// and ./configs/tuicore-demo.yaml, then defaults if none is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("tuicore-demo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "config file not found, using defaults")
		} else if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "config file %s not found, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("TUICORE_DEMO")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader parses configType-formatted content directly, for tests.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("counter.start", 0)
	v.SetDefault("counter.step", 1)
	v.SetDefault("counter.cols", 40)
	v.SetDefault("counter.rows", 8)
	v.SetDefault("counter.frames", 6)
}

// Validate reports the first malformed field, if any.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Counter.Cols <= 0 || c.Counter.Rows <= 0 {
		return fmt.Errorf("counter.cols/rows must be positive")
	}
	if c.Counter.Frames < 0 {
		return fmt.Errorf("counter.frames must not be negative")
	}
	return nil
}
