package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	envPrefix  = "MEDBOOK_"
	dotEnvFile = ".env"
)

// Config holds runtime settings for the MedBook CLI.
type Config struct {
	APIURL              string        `env:"API_URL"`
	SessionDB           string        `env:"SESSION_DB"`
	Ephemeral           bool          `env:"EPHEMERAL"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8000/api"
	c.SessionDB = "medbook.db"
	c.Ephemeral = false
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, .env and the process
// environment, an optional JSON file and the command-line flags in args
// (without the program name).
func LoadConfig(args []string) (*Config, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	return load(args, nil)
}

// load is LoadConfig without the .env step. A nil environ means the process
// environment.
func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv exports the variables of path that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func parseEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: envPrefix, Environment: environ}
	if environ == nil {
		opts.Environment = env.ToMap(os.Environ())
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.APIURL == "":
		return errors.New("config: empty API URL")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	case c.OnlineCheckInterval <= 0:
		return fmt.Errorf("config: online check interval must be positive, got %s", c.OnlineCheckInterval)
	case !c.Ephemeral && c.SessionDB == "":
		return errors.New("config: empty session database path")
	}
	return nil
}
