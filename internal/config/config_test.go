package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "mongo", cfg.Store)
	assert.Equal(t, DefaultMongoURL, cfg.MongoURL)
	assert.Equal(t, "viewgraph", cfg.DBName)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewgraph.yaml")
	content := "port: 9000\nstore: memory\ncors_origins: \"http://a.example, http://b.example\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Origins())
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultMongoURL, cfg.MongoURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_name: fromfile\n"), 0o644))

	t.Setenv("VIEWGRAPH_DB_NAME", "fromenv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.DBName)
}

func TestLoad_MissingExplicitFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"memory store needs no mongo url", func(c *Config) { c.Store = "memory"; c.MongoURL = "" }, false},
		{"unknown store", func(c *Config) { c.Store = "postgres" }, true},
		{"mongo store without url", func(c *Config) { c.MongoURL = "" }, true},
		{"invalid port", func(c *Config) { c.Port = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:     DefaultPort,
				Store:    DefaultStore,
				MongoURL: DefaultMongoURL,
				DBName:   DefaultDBName,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
