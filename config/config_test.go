package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seleniumguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, "pptx", cfg.Export.DefaultFormat)
	assert.Equal(t, 4, cfg.Export.Concurrency)
	assert.Equal(t, "sqlite", cfg.History.Engine)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
language: zh
server:
  port: 9090
  cors:
    allow_origins: ["https://guide.example.com"]
export:
  output_dir: /tmp/decks
  default_format: pdf
history:
  engine: sqlite
  path: ":memory:"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zh", cfg.Language)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://guide.example.com"}, cfg.Server.CORS.AllowOrigins)
	assert.Equal(t, "/tmp/decks", cfg.Export.OutputDir)
	assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
	assert.Equal(t, ":memory:", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 4, cfg.Export.Concurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SELENIUMGUIDE_SERVER_PORT", "7070")
	t.Setenv("SELENIUMGUIDE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"language", func(c *Config) { c.Language = "fr" }, "language"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"concurrency", func(c *Config) { c.Export.Concurrency = 0 }, "export.concurrency"},
		{"engine", func(c *Config) { c.History.Engine = "duckdb" }, "history.engine"},
		{"mysql dsn", func(c *Config) { c.History.Engine = "mysql" }, "history.dsn"},
		{"sqlite path", func(c *Config) { c.History.Path = "" }, "history.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	cfg.History.Enabled = false
	cfg.History.Engine = "anything"
	assert.NoError(t, cfg.Validate())
}
