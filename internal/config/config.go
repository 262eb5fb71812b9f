// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	apperrors "github.com/annoeval/brat-compare/internal/pkg/errors"
)

// Config holds all application configuration.
type Config struct {
	// Comparison configuration
	Compare CompareConfig `yaml:"compare"`

	// Report configuration
	Report ReportConfig `yaml:"report"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// CompareConfig holds comparison settings.
type CompareConfig struct {
	Mode         string `envconfig:"BRAT_MODE" yaml:"mode"`
	SystemDir    string `envconfig:"BRAT_SYSTEM_DIR" yaml:"system_dir"`
	ReferenceDir string `envconfig:"BRAT_REFERENCE_DIR" yaml:"reference_dir"`
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Format       string `envconfig:"BRAT_REPORT_FORMAT" yaml:"format"`
	ShowEvidence bool   `envconfig:"BRAT_REPORT_EVIDENCE" yaml:"show_evidence"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"BRAT_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"BRAT_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from environment variables and optional config file.
// The result is not validated: callers apply their own overrides first and
// then call Validate once.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Set defaults first
	setDefaults(cfg)

	// Load from YAML file if provided (overrides defaults)
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, apperrors.IOError("loading config file", err).WithDetail("path", configPath)
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "processing env config", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Compare = CompareConfig{
		Mode: "relax",
	}

	cfg.Report = ReportConfig{
		Format:       "text",
		ShowEvidence: false,
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	// Mode is matched on its first letter; only an empty value is rejected.
	if strings.TrimSpace(c.Compare.Mode) == "" {
		errs = append(errs, "compare.mode must not be empty")
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Report.Format] {
		errs = append(errs, fmt.Sprintf("invalid report format: %s (must be text or json)", c.Report.Format))
	}

	// Log validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return apperrors.ValidationError(fmt.Sprintf("config validation failed:\n  - %s", strings.Join(errs, "\n  - ")))
	}

	return nil
}

// IsDevelopment reports whether debug logging is on. The CLI uses it to log
// per-file digests while reading corpora.
func (c *Config) IsDevelopment() bool {
	return c.Log.Level == "debug"
}
