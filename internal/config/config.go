package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/pipeline.log" validate:"required"`
}

// PipelineConfig contains the dataset build configuration
type PipelineConfig struct {
	// Years lists the source years to ingest, ascending. The most recent
	// year is the partial one whose workbook carries the to-date suffix.
	Years []int `yaml:"years" envconfig:"YEARS" default:"2022,2023,2024,2025" validate:"min=1,dive,gte=2000,lte=2100"`
	// TopN is the number of entries shown in each frequency table and in
	// the ZIP chart.
	TopN int `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"gte=1"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Environment variables (and struct defaults) first
	if err := envconfig.Process("VAINSPECT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Overlay values from config file if one exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(cfg, *fileCfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LatestYear returns the most recent configured year, the one whose source
// workbook uses the to-date naming convention.
func (c *PipelineConfig) LatestYear() int {
	if len(c.Years) == 0 {
		return 0
	}
	latest := c.Years[0]
	for _, y := range c.Years[1:] {
		if y > latest {
			latest = y
		}
	}
	return latest
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays non-zero file values onto the env-derived config.
func mergeConfigs(env, file Config) Config {
	merged := env
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		merged.Logging.Format = file.Logging.Format
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if len(file.Pipeline.Years) > 0 {
		merged.Pipeline.Years = file.Pipeline.Years
	}
	if file.Pipeline.TopN != 0 {
		merged.Pipeline.TopN = file.Pipeline.TopN
	}
	return merged
}

// getConfigFilePath returns the config file location: $VAINSPECT_CONFIG if
// set, otherwise config.yaml next to the executable.
func getConfigFilePath() string {
	if path := os.Getenv("VAINSPECT_CONFIG"); path != "" {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}
