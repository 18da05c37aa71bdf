package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type ExportFormat string

const (
	ExportFormatHTML  ExportFormat = "html"
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatTable ExportFormat = "table"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Table    TableConfig    `toml:"table"`
	Export   ExportConfig   `toml:"export"`
	Confirm  ConfirmConfig  `toml:"confirm"`
	Logging  LoggingConfig  `toml:"logging"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TableConfig struct {
	ShowAllowedDays  bool `toml:"show_allowed_days"`
	ShowDependencies bool `toml:"show_dependencies"`
	ShowDisplayDates bool `toml:"show_display_dates"`
}

type ExportConfig struct {
	DefaultFormat ExportFormat `toml:"default_format"`
}

type ConfirmConfig struct {
	Delete bool `toml:"delete"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"` // debug | info | warn | error
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Table: TableConfig{
			ShowAllowedDays:  true,
			ShowDependencies: true,
			ShowDisplayDates: true,
		},
		Export: ExportConfig{
			DefaultFormat: ExportFormatTable,
		},
		Confirm: ConfirmConfig{
			Delete: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	switch c.Export.DefaultFormat {
	case ExportFormatHTML, ExportFormatCSV, ExportFormatTable:
	default:
		return fmt.Errorf("invalid export.default_format: %q", c.Export.DefaultFormat)
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when dev file logging is enabled")
	}

	return nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
