// Package config loads griddeck configuration from defaults, a YAML file,
// GRIDDECK_-prefixed environment variables, and CLI flags, in that
// precedence order (flags highest).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultGridCols     = 12
	DefaultMaxRows      = 64
	DefaultHistoryDepth = 50
	DefaultDebounceMS   = 750
	DefaultBackend      = "file"
)

// Config is the resolved griddeck configuration.
type Config struct {
	GridCols     int    `koanf:"grid_cols"`
	MaxRows      int    `koanf:"max_rows"`
	HistoryDepth int    `koanf:"history_depth"`
	DebounceMS   int    `koanf:"debounce_ms"`
	Owner        string `koanf:"owner"`
	Verbose      bool   `koanf:"verbose"`

	Store StoreConfig `koanf:"store"`
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	Backend   string `koanf:"backend"` // file | redis | memory
	Dir       string `koanf:"dir"`     // file backend base directory
	RedisAddr string `koanf:"redis_addr"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > ./griddeck.yaml > ~/.config/griddeck/griddeck.yaml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"griddeck.yaml", "griddeck.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".config", "griddeck", "griddeck.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load resolves the configuration. flags may be nil (no flag overrides).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]any{
		"grid_cols":     DefaultGridCols,
		"max_rows":      DefaultMaxRows,
		"history_depth": DefaultHistoryDepth,
		"debounce_ms":   DefaultDebounceMS,
		"owner":         defaultOwner(),
		"verbose":       false,
		"store.backend": DefaultBackend,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file.
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// 3. Environment (GRIDDECK_ prefix; double underscore nests keys,
	// e.g. GRIDDECK_STORE__REDIS_ADDR -> store.redis_addr).
	if err := k.Load(env.Provider("GRIDDECK_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "GRIDDECK_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	// 4. Flags, highest priority.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "backend":
				return "store.backend", posflag.FlagVal(flags, f)
			case "data_dir":
				return "store.dir", posflag.FlagVal(flags, f)
			case "redis_addr":
				return "store.redis_addr", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GridCols < 1 {
		return fmt.Errorf("grid_cols must be positive, got %d", c.GridCols)
	}
	if c.HistoryDepth < 2 {
		return fmt.Errorf("history_depth must be at least 2, got %d", c.HistoryDepth)
	}
	switch c.Store.Backend {
	case "file", "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// defaultOwner derives the owner id from the local user; the auth context
// supplies a real one in multi-user setups.
func defaultOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
