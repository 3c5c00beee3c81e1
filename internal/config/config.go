// Package config loads runtime configuration.
//
// Sources, lowest to highest precedence: `default` tags, the optional config
// file, then environment variables (an optional .env file is read into the
// environment first, without overriding variables that are already set).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jinzhu/configor"
	"github.com/joho/godotenv"

	"github.com/sakif/starwars-api/internal/auth"
)

// DefaultFile is the config file the server looks for when none is given.
const DefaultFile = "config/config.json"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Name            string `default:"starwars-api" env:"APP_NAME"`
	Port            int    `default:"3000" env:"PORT"`
	ShutdownTimeout int    `default:"30" env:"SHUTDOWN_TIMEOUT"` // seconds

	// RateLimit is requests per second across all clients; 0 disables limiting.
	RateLimit float64 `default:"0" env:"RATE_LIMIT"`
	RateBurst int     `default:"20" env:"RATE_BURST"`
}

// DatabaseConfig selects the store. A postgres URL wins; otherwise Path is
// opened as a SQLite file (":memory:" for a throwaway database).
type DatabaseConfig struct {
	URL  string `env:"DATABASE_URL"`
	Path string `default:"/tmp/test.db" env:"DB_PATH"`
}

type LogConfig struct {
	Level  string `default:"info" env:"LOG_LEVEL"`  // debug | info | warn | error
	Format string `default:"text" env:"LOG_FORMAT"` // text | json
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST"` // 0 means auth.DefaultCost
}

// Load reads dotenv (skipped when empty or missing) and then the config files
// that exist. Missing config files are not an error.
func Load(dotenv string, files ...string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", dotenv, err)
		}
	}

	var cfg Config
	loader := configor.New(&configor.Config{Silent: true})
	if err := loader.Load(&cfg, files...); err != nil {
		return Config{}, fmt.Errorf("config: loading: %w", err)
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = auth.DefaultCost
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.App.Port)
	}
	if c.App.RateLimit < 0 {
		return fmt.Errorf("config: invalid rate limit %v", c.App.RateLimit)
	}
	if c.App.RateLimit > 0 && c.App.RateBurst < 1 {
		return fmt.Errorf("config: rate burst must be at least 1, got %d", c.App.RateBurst)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: invalid log format %q", c.Log.Format)
	}
	if c.Database.URL == "" && c.Database.Path == "" {
		return errors.New("config: either DATABASE_URL or DB_PATH is required")
	}
	return nil
}
