package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// config holds the settings shared by all commands. Flags win over the
// environment; the environment wins over built-in defaults.
type config struct {
	EnvFile  string
	Sheet    string `validate:"required"`
	Locale   string `validate:"required"`
	Format   string `validate:"oneof=json yaml text"`
	LogLevel string `validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

func defaultConfig() config {
	return config{
		Sheet:    "Sheet1",
		Locale:   "en_US",
		Format:   "json",
		LogLevel: "warn",
	}
}

var cfg = defaultConfig()

var envBindings = []struct {
	flag string
	env  string
	dest *string
}{
	{"sheet", "XLRECORD_SHEET", &cfg.Sheet},
	{"locale", "XLRECORD_LOCALE", &cfg.Locale},
	{"format", "XLRECORD_FORMAT", &cfg.Format},
	{"log-level", "XLRECORD_LOG_LEVEL", &cfg.LogLevel},
}

// loadConfig applies the env file and environment to flags the user did not
// set, then validates the result.
func loadConfig(cmd *cobra.Command) error {
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	for _, b := range envBindings {
		flag := cmd.Flags().Lookup(b.flag)
		if flag != nil && flag.Changed {
			continue
		}
		if v, ok := os.LookupEnv(b.env); ok && v != "" {
			*b.dest = v
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
