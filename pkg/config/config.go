// Package config loads rxbuilder defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config holds rxbuilder defaults. Command-line flags override it.
type Config struct {
	// Recognizer catalog
	Recognizers string   `yaml:"recognizers" env:"RXBUILDER_RECOGNIZERS"` // YAML catalog path; empty uses the builtin catalog
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`

	// Scanning
	ScanBudget time.Duration `yaml:"scan_budget" env:"RXBUILDER_SCAN_BUDGET"`

	// Selection and composition
	AutoSelectPriority int           `yaml:"auto_select_priority" env:"RXBUILDER_AUTO_SELECT_PRIORITY"`
	Options            types.Options `yaml:"options"`

	LogLevel string `yaml:"log_level" env:"RXBUILDER_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ScanBudget:         scanner.DefaultBudget,
		AutoSelectPriority: session.DefaultAutoSelectPriority,
		LogLevel:           "warn",
	}
}

// Load reads the config file at path, then applies environment overrides.
// An empty path means the default location; a missing default file is not an
// error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		err := loadFromFile(cfg, path)
		if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("%w: failed to load config file: %v", types.ErrConfig, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to load from environment: %v", types.ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid configuration: %v", types.ErrConfig, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.ScanBudget < 0 {
		return fmt.Errorf("scan_budget must be non-negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

// Catalog loads the configured recognizer catalog and applies the
// include/exclude filters.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if c.Recognizers != "" {
		cat, err = catalog.Load(c.Recognizers)
	} else {
		cat, err = catalog.Builtin()
	}
	if err != nil {
		return nil, err
	}

	if len(c.Include) == 0 && len(c.Exclude) == 0 {
		return cat, nil
	}
	return cat.Filter(catalog.FilterConfig{Include: c.Include, Exclude: c.Exclude})
}

// defaultPath returns the config file path
func defaultPath() string {
	if path := os.Getenv("RXBUILDER_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rxbuilder", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "rxbuilder", "config.yaml")
	}

	return ""
}

func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - path comes from a flag, env var or the standard location
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadFromEnv(cfg *Config) error {
	if path := os.Getenv("RXBUILDER_RECOGNIZERS"); path != "" {
		cfg.Recognizers = path
	}

	if budget := os.Getenv("RXBUILDER_SCAN_BUDGET"); budget != "" {
		d, err := time.ParseDuration(budget)
		if err != nil {
			return fmt.Errorf("invalid RXBUILDER_SCAN_BUDGET: %w", err)
		}
		cfg.ScanBudget = d
	}

	if p := os.Getenv("RXBUILDER_AUTO_SELECT_PRIORITY"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid RXBUILDER_AUTO_SELECT_PRIORITY: %w", err)
		}
		cfg.AutoSelectPriority = n
	}

	if level := os.Getenv("RXBUILDER_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return nil
}
