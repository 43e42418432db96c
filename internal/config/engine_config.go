// Package config loads the engine's construction-time configuration: the
// reference data directory, the plan-year scalar parameters, and an
// optional environment override for the conversion factor.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	engerrors "github.com/iris-health/medicare-repricer/internal/errors"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// EngineConfig is the construction-time configuration for the repricing
// engine.
type EngineConfig struct {
	DataDirectory string `mapstructure:"data_directory" validate:"required"`

	// ConversionFactorOverride, if non-zero, replaces the default PFS
	// conversion factor (32.35).
	ConversionFactorOverride float64 `mapstructure:"conversion_factor" validate:"gte=0"`

	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DefaultEngineConfig returns the baseline configuration: a "." data
// directory and info-level logging, with no conversion factor override.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		DataDirectory:            ".",
		ConversionFactorOverride: 0,
		LogLevel:                 "info",
	}
}

// LoadEngineConfig assembles configuration in layered precedence: an
// optional .env overlay, a YAML config file (if present), environment
// variables, and finally the hardcoded defaults above. The assembled
// struct is validated before being returned; a non-existent data directory
// or an invalid log level fails fast.
func LoadEngineConfig(configPath string) (*EngineConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("data_directory", DefaultEngineConfig().DataDirectory)
	v.SetDefault("conversion_factor", DefaultEngineConfig().ConversionFactorOverride)
	v.SetDefault("log_level", DefaultEngineConfig().LogLevel)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read engine config file %s: %w", configPath, err)
		}
	}

	if dir := os.Getenv("REPRICER_DATA_DIRECTORY"); dir != "" {
		v.Set("data_directory", dir)
	}
	if cf := os.Getenv("REPRICER_CONVERSION_FACTOR"); cf != "" {
		if parsed, err := strconv.ParseFloat(cf, 64); err == nil {
			v.Set("conversion_factor", parsed)
		}
	}
	if level := os.Getenv("REPRICER_LOG_LEVEL"); level != "" {
		v.Set("log_level", level)
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal engine config: %w", err)
	}

	if err := validateEngineConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateEngineConfig runs struct-tag validation and checks that the
// data directory actually exists, since validator cannot express a
// filesystem-existence rule as a tag.
func validateEngineConfig(cfg *EngineConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return engerrors.Wrap(err, engerrors.ErrInvalidConfig)
	}
	info, err := os.Stat(cfg.DataDirectory)
	if err != nil || !info.IsDir() {
		return engerrors.Wrap(fmt.Errorf("data_directory %q does not exist or is not a directory", cfg.DataDirectory), engerrors.ErrInvalidConfig)
	}
	return nil
}

// Scalars resolves the plan-year scalar parameters, applying
// ConversionFactorOverride when set.
func (c *EngineConfig) Scalars() refdata.Scalars {
	s := refdata.DefaultScalars()
	if c.ConversionFactorOverride > 0 {
		s.PFSConversionFactor = c.ConversionFactorOverride
	}
	return s
}
