// Package config loads viewgraph configuration with koanf.
// Precedence (highest to lowest): env vars > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "viewgraph.yaml"
	ConfigFileNameAlt = "viewgraph.yml"
)

// Default configuration values.
const (
	DefaultPort        = 8001
	DefaultStore       = "mongo"
	DefaultMongoURL    = "mongodb://localhost:27017"
	DefaultDBName      = "viewgraph"
	DefaultCORSOrigins = "*"
	DefaultLogLevel    = "info"
)

// Config holds all service configuration.
type Config struct {
	Port        int    `koanf:"port"`
	Store       string `koanf:"store"` // mongo or memory
	MongoURL    string `koanf:"mongo_url"`
	DBName      string `koanf:"db_name"`
	CORSOrigins string `koanf:"cors_origins"` // comma-separated, * for any
	LogLevel    string `koanf:"log_level"`    // debug, info, warn, error
}

// Load reads configuration from defaults, an optional YAML file and
// VIEWGRAPH_-prefixed environment variables. cfgFile may be empty, in which
// case viewgraph.yaml / viewgraph.yml are tried in the working directory;
// a missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"port":         DefaultPort,
		"store":        DefaultStore,
		"mongo_url":    DefaultMongoURL,
		"db_name":      DefaultDBName,
		"cors_origins": DefaultCORSOrigins,
		"log_level":    DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// VIEWGRAPH_MONGO_URL -> mongo_url
	if err := k.Load(env.Provider("VIEWGRAPH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VIEWGRAPH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown store backend %q (expected mongo or memory)", c.Store)
	}
	if c.Store == "mongo" && c.MongoURL == "" {
		return fmt.Errorf("mongo_url is required for the mongo store")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// Origins returns the configured CORS origins as a slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func findConfigFile() string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
