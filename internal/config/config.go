package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type BankDriver string

const (
	BankFile     BankDriver = "file"
	BankSQLite   BankDriver = "sqlite"
	BankPostgres BankDriver = "postgres"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	BankDriver BankDriver `env:"BANK_DRIVER" envDefault:"file"`
	BankDir    string     `env:"BANK_DIR" envDefault:"./banks"`
	DBDSN      string     `env:"DB_DSN"` // empty: driver default

	PretestCount int `env:"PRETEST_COUNT" envDefault:"2"`

	LogLevel  string    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat LogFormat `env:"LOG_FORMAT" envDefault:"text"`
}

// FromEnv reads configuration from the process environment.
func FromEnv() (Config, error) {
	return parse(env.Options{})
}

// FromMap reads configuration from vars instead of the process environment.
func FromMap(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.BankDriver {
	case BankFile:
		if strings.TrimSpace(c.BankDir) == "" {
			return fmt.Errorf("%w: BANK_DIR is required for the file driver", ErrInvalidConfig)
		}
	case BankSQLite, BankPostgres:
	default:
		return fmt.Errorf("%w: unknown BANK_DRIVER %q", ErrInvalidConfig, c.BankDriver)
	}
	if c.PretestCount <= 0 {
		return fmt.Errorf("%w: PRETEST_COUNT must be positive, got %d", ErrInvalidConfig, c.PretestCount)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unknown LOG_FORMAT %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL: %w", ErrInvalidConfig, err)
	}
	return lvl, nil
}
