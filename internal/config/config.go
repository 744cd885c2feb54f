// Package config loads the refscan runtime configuration from defaults, an
// optional config file, and REFSCAN_-prefixed environment variables, in
// rising priority order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the settings of one refscan invocation.
type Configuration struct {
	MongoURI              string `koanf:"mongo_uri" validate:"required"`
	DatabaseName          string `koanf:"database_name" validate:"required"`
	SchemaPath            string `koanf:"schema_path"`
	ReferenceReportPath   string `koanf:"reference_report" validate:"required"`
	ViolationReportPath   string `koanf:"violation_report" validate:"required"`
	ConnectTimeoutSeconds int    `koanf:"connect_timeout_seconds" validate:"min=1,max=300"`
	ShowProgress          bool   `koanf:"show_progress"`
	// OmitMisplacedColumn drops the violation report's last column (the
	// collection a misplaced target was actually found in).
	OmitMisplacedColumn bool `koanf:"omit_misplaced_column"`
}

// Load loads configuration from global config, local config, and environment
// sources. Priority: environment variables > local config > global config >
// defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Global config if it exists.
	if homeDir, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(homeDir, ".refscan", "config.yml")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Local config if it exists.
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Environment variables take highest priority.
	k.Load(env.Provider("REFSCAN_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SchemaPath = expandHomePath(cfg.SchemaPath)
	cfg.ReferenceReportPath = expandHomePath(cfg.ReferenceReportPath)
	cfg.ViolationReportPath = expandHomePath(cfg.ViolationReportPath)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: REFSCAN_MONGO_URI -> mongo_uri
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "REFSCAN_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
