package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string // empty logs to stdout

	RedisURL string // empty disables event broadcasting

	Seed      int64 // negative seeds from the clock
	TimeLimit int

	MCPAddr     string
	MCPPath     string
	MCPToken    string
	MCPOrigins  []string
	MetricsPath string
}

// Load reads the environment, then overlays the INI file at path (or
// $WOL_CONFIG when path is empty). A missing path means environment only.
func Load(path string) (*Config, error) {
	seed, err := strconv.ParseInt(getEnv("SEED", "-1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}
	limit, err := strconv.Atoi(getEnv("TIME_LIMIT", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_LIMIT: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Seed:        seed,
		TimeLimit:   limit,
		MCPAddr:     getEnv("MCP_ADDR", "127.0.0.1:8080"),
		MCPPath:     getEnv("MCP_PATH", "/mcp"),
		MCPToken:    getEnv("MCP_TOKEN", ""),
		MCPOrigins:  splitList(getEnv("MCP_ORIGINS", "")),
		MetricsPath: getEnv("METRICS_PATH", "/metrics"),
	}

	if path == "" {
		path = os.Getenv("WOL_CONFIG")
	}
	if path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// overlay applies the keys present in the INI file:
//
//	environment = production
//	[log]
//	level = debug
//	file = wol.log
//	[game]
//	seed = 42
//	time_limit = 12
//	[redis]
//	url = redis://localhost:6379/0
//	[mcp]
//	addr = 127.0.0.1:8080
//	path = /mcp
//	token = secret
//	origins = http://localhost:3000, http://example.com
//	metrics_path = /metrics
func (c *Config) overlay(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	root := f.Section("")
	setString(root, "environment", &c.Environment)

	log := f.Section("log")
	if log.HasKey("level") {
		c.LogLevel = parseLogLevel(log.Key("level").String())
	}
	setString(log, "file", &c.LogFile)

	game := f.Section("game")
	if game.HasKey("seed") {
		seed, err := game.Key("seed").Int64()
		if err != nil {
			return fmt.Errorf("invalid game.seed in %s: %w", path, err)
		}
		c.Seed = seed
	}
	if game.HasKey("time_limit") {
		limit, err := game.Key("time_limit").Int()
		if err != nil {
			return fmt.Errorf("invalid game.time_limit in %s: %w", path, err)
		}
		c.TimeLimit = limit
	}

	setString(f.Section("redis"), "url", &c.RedisURL)

	mcp := f.Section("mcp")
	setString(mcp, "addr", &c.MCPAddr)
	setString(mcp, "path", &c.MCPPath)
	setString(mcp, "token", &c.MCPToken)
	setString(mcp, "metrics_path", &c.MetricsPath)
	if mcp.HasKey("origins") {
		c.MCPOrigins = splitList(mcp.Key("origins").String())
	}
	return nil
}

func setString(sec *ini.Section, key string, dst *string) {
	if sec.HasKey(key) {
		*dst = sec.Key(key).String()
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
