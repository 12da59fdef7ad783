// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sqlcoach/internal/domain"
	"sqlcoach/internal/report"
)

// Config holds the harness configuration. Values come from SQLCOACH_*
// environment variables; CLI flags override them.
type Config struct {
	Engine     string // target engine: "sqlite" (default) or "duckdb"
	Output     string // report format: "text" (default), "json", or "html"
	WorkDir    string // directory for disposable sandbox files (default: os.TempDir())
	CatalogDir string // exercise directory; empty means the embedded catalog
	LogLevel   string // log level: debug, info, warn, error (default "info")
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	if !validEngine(c.Engine) {
		return fmt.Errorf("unsupported engine %q: use one of %s", c.Engine, strings.Join(domain.Engines(), ", "))
	}
	if !report.ValidFormat(c.Output) {
		return fmt.Errorf("unsupported output format %q: use 'text', 'json' or 'html'", c.Output)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables, applying
// defaults for anything unset.
func LoadFromEnv() *Config {
	cfg := &Config{
		Engine:     os.Getenv("SQLCOACH_ENGINE"),
		Output:     os.Getenv("SQLCOACH_OUTPUT"),
		WorkDir:    os.Getenv("SQLCOACH_WORK_DIR"),
		CatalogDir: os.Getenv("SQLCOACH_CATALOG_DIR"),
		LogLevel:   os.Getenv("SQLCOACH_LOG_LEVEL"),
	}

	if cfg.Engine == "" {
		cfg.Engine = domain.EngineSQLite
	}
	if cfg.Output == "" {
		cfg.Output = report.FormatText
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}

func validEngine(name string) bool {
	for _, engine := range domain.Engines() {
		if name == engine {
			return true
		}
	}
	return false
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
