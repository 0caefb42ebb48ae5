// Package config resolves runtime settings from defaults, an optional .env
// file, TODO_* environment variables and root flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Makepad-fr/todolist/internal/logging"
)

// Config holds every tunable of the todo binary.
type Config struct {
	ItemFile    string `env:"TODO_FILE" envDefault:"todo_list.csv"`
	CatalogFile string `env:"TODO_CATALOG" envDefault:"translations.toml"`
	Locale      string `env:"TODO_LOCALE" envDefault:"zh"`
	LogLevel    string `env:"TODO_LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"TODO_LOG_FILE"`
	Theme       string `env:"TODO_THEME" envDefault:"classic"`
}

// Load builds the config. dotenv names optional .env files; missing ones are
// ignored. args are the process arguments without the program name; the
// positional remainder is returned for the subcommand router.
func Load(args []string, dotenv ...string) (Config, []string, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("parse env: %w", err)
	}

	fset := flag.NewFlagSet("todo", flag.ContinueOnError)
	fset.SetOutput(io.Discard) // the caller reports errors and prints help
	cfg.RegisterFlags(fset)
	if err := fset.Parse(args); err != nil {
		return Config{}, nil, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, fset.Args(), nil
}

// RegisterFlags binds root flags, using the current values as defaults.
func (c *Config) RegisterFlags(fset *flag.FlagSet) {
	fset.StringVar(&c.ItemFile, "file", c.ItemFile, "todo item file (.csv or .json)")
	fset.StringVar(&c.CatalogFile, "catalog", c.CatalogFile, "locale definition file (.toml or .xml)")
	fset.StringVar(&c.Locale, "lang", c.Locale, "initial display locale")
	fset.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fset.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file")
	fset.StringVar(&c.Theme, "theme", c.Theme, "classic, neon or mono")
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ItemFile) == "" {
		return errors.New("config: item file path is empty")
	}
	if strings.TrimSpace(c.CatalogFile) == "" {
		return errors.New("config: catalog path is empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
