// Package config provides configuration management for the pricer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"derivative-pricer/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Market     MarketConfig     `mapstructure:"market"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Output     OutputConfig     `mapstructure:"output"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// MarketConfig holds fallback market parameters used when the matching
// flags are not given. A zero spot means the flag stays required.
type MarketConfig struct {
	Spot     float64 `mapstructure:"spot"`
	Rate     float64 `mapstructure:"rate"`
	Dividend float64 `mapstructure:"dividend"`
	Vol      float64 `mapstructure:"vol"`
}

// SimulationConfig holds Monte-Carlo defaults.
type SimulationConfig struct {
	Paths      int     `mapstructure:"paths"`
	Steps      int     `mapstructure:"steps"`
	Seed       uint64  `mapstructure:"seed"`
	Antithetic bool    `mapstructure:"antithetic"`
	Confidence float64 `mapstructure:"confidence"`
	Workers    int     `mapstructure:"workers"`
}

// ToModel converts the section into the domain simulation config.
func (s SimulationConfig) ToModel() models.SimulationConfig {
	return models.SimulationConfig{
		Paths:      s.Paths,
		Steps:      s.Steps,
		Seed:       s.Seed,
		Antithetic: s.Antithetic,
		Confidence: s.Confidence,
		Workers:    s.Workers,
	}
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Precision    int    `mapstructure:"precision"`
	Format       string `mapstructure:"format"` // "table", "json"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/derivative-pricer"
	}
	return filepath.Join(home, ".config", "derivative-pricer")
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() *Config {
	return &Config{
		Market: MarketConfig{
			Rate:     0.05,
			Dividend: 0,
			Vol:      0.2,
		},
		Simulation: SimulationConfig{
			Paths:      models.DefaultPaths,
			Steps:      models.DefaultSteps,
			Confidence: models.DefaultConfidence,
		},
		Output: OutputConfig{
			ColorEnabled: true,
			Precision:    4,
			Format:       "table",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, uses the default config directory. A missing config file is not an
// error; the built-in defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	} else if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PRICER_PATHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PRICER_PATHS: %w", err)
		}
		cfg.Simulation.Paths = n
	}
	if v := os.Getenv("PRICER_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing PRICER_SEED: %w", err)
		}
		cfg.Simulation.Seed = n
	}
	if v := os.Getenv("PRICER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PRICER_WORKERS: %w", err)
		}
		cfg.Simulation.Workers = n
	}
	if v := os.Getenv("PRICER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Market.Spot < 0 {
		return fmt.Errorf("market spot must be non-negative")
	}
	if c.Market.Dividend < 0 {
		return fmt.Errorf("market dividend must be non-negative")
	}
	if c.Market.Vol < 0 {
		return fmt.Errorf("market vol must be non-negative")
	}

	if err := c.Simulation.ToModel().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if c.Output.Precision < 0 || c.Output.Precision > 12 {
		return fmt.Errorf("output precision must be between 0 and 12")
	}
	if c.Output.Format != "table" && c.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", c.Output.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
