// Package config reads the process configuration from the environment.
package config

import (
	"errors"
	"strconv"
)

const (
	// DefaultOutDir is where the generated cards land unless overridden.
	DefaultOutDir = "assets"
	// DefaultLangLimit bounds the ranked top-language list.
	DefaultLangLimit = 10
)

// Config is the full run configuration, read once at startup and threaded
// through as parameters. Nothing here is mutated after Load.
type Config struct {
	Token     string
	User      string
	OutDir    string
	LangLimit int
}

// Load builds a Config from the given environment lookup. Passing the
// lookup in keeps the function testable without touching the real
// environment.
func Load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Token:     getenv("GITHUB_TOKEN"),
		User:      getenv("GITHUB_USER"),
		OutDir:    getenv("CARDS_OUT_DIR"),
		LangLimit: DefaultLangLimit,
	}

	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if raw := getenv("CARDS_LANG_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, errors.New("CARDS_LANG_LIMIT must be a positive integer")
		}
		cfg.LangLimit = n
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the required fields.
func Validate(cfg Config) error {
	if cfg.Token == "" {
		return errors.New("missing GITHUB_TOKEN environment variable")
	}
	if cfg.User == "" {
		return errors.New("missing GITHUB_USER environment variable")
	}
	return nil
}
