package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the settings store for the exporter and its surfaces.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	LibraryRoot      string   `json:"library_root" yaml:"library_root" toml:"library_root"`
	DefaultExportDir string   `json:"default_export_dir" yaml:"default_export_dir" toml:"default_export_dir"`
	Addr             string   `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel         string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile          string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogMaxSizeMB     int      `json:"log_max_size_mb" yaml:"log_max_size_mb" toml:"log_max_size_mb"`
	CORSEnabled      bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins      []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set and otherwise starts from defaults.
// Defaults and environment overrides are applied in both cases.
func LoadOrDefault(path string) (Config, error) {
	var cfg Config
	if path != "" {
		c, err := Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = c
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return cfg, nil
}
