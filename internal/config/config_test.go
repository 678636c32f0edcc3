package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "LOG_FILE", "REDIS_URL", "SEED", "TIME_LIMIT",
		"MCP_ADDR", "MCP_PATH", "MCP_TOKEN", "MCP_ORIGINS", "METRICS_PATH", "WOL_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, int64(-1), cfg.Seed)
	assert.Equal(t, 12, cfg.TimeLimit)
	assert.Equal(t, "127.0.0.1:8080", cfg.MCPAddr)
	assert.Equal(t, "/mcp", cfg.MCPPath)
	assert.Nil(t, cfg.MCPOrigins)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("SEED", "42")
	t.Setenv("TIME_LIMIT", "20")
	t.Setenv("MCP_ORIGINS", "http://a.example, ,http://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 20, cfg.TimeLimit)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.MCPOrigins)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEED", "abc")
	_, err := Load("")
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("TIME_LIMIT", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoad_INIOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://env:6379/0")
	t.Setenv("MCP_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "wol.ini")
	doc := `environment = production

[log]
level = debug
file = wol.log

[game]
seed = 7
time_limit = 5

[mcp]
addr = :9000
origins = http://localhost:3000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "wol.log", cfg.LogFile)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 5, cfg.TimeLimit)
	assert.Equal(t, ":9000", cfg.MCPAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.MCPOrigins)
	// Keys absent from the file keep their environment values.
	assert.Equal(t, "redis://env:6379/0", cfg.RedisURL)
	assert.Equal(t, "from-env", cfg.MCPToken)
	assert.Equal(t, "/mcp", cfg.MCPPath)
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wol.ini")
	require.NoError(t, os.WriteFile(path, []byte("[game]\ntime_limit = 3\n"), 0o600))
	t.Setenv("WOL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TimeLimit)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.ini")
	require.NoError(t, os.WriteFile(path, []byte("[game]\nseed = many\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
