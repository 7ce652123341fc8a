package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"langkit/internal/domain/entities"
)

type Config struct {
	// DefaultLocale is the locale used when none is requested explicitly.
	DefaultLocale entities.Locale

	// DictionaryPath is the default dictionary file loaded by the CLI when
	// no file argument is given.
	DictionaryPath string

	// DatabaseURL is the PostgreSQL DSN for dictionary persistence. It is
	// only required by commands that touch the database.
	DatabaseURL string

	// MigrationsPath is where SQL migrations live.
	MigrationsPath string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment itself.
	}

	cfg := &Config{
		DictionaryPath: os.Getenv("DICTIONARY_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	rawLocale := os.Getenv("DEFAULT_LOCALE")
	if strings.TrimSpace(rawLocale) == "" {
		rawLocale = "en"
	}
	locale, err := entities.ParseLocale(rawLocale)
	if err != nil {
		return nil, fmt.Errorf("config: DEFAULT_LOCALE: %w", err)
	}
	cfg.DefaultLocale = locale

	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all the rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// The database is optional; commands requiring one check themselves.
		return nil
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	return nil
}
