package service

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store drivers
const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the resolved configuration of the serve command.
type Config struct {
	Addr            string        `validate:"required,hostname_port"`
	Driver          string        `validate:"oneof=badger postgres memory"`
	DataDir         string        `validate:"required_if=Driver badger"`
	DatabaseURL     string        `validate:"required_if=Driver postgres"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// ParseConfig resolves the serve configuration. Flags win over environment
// variables, which win over defaults. getenv is usually os.Getenv.
func ParseConfig(args []string, getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(env("POSTBOARD_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("POSTBOARD_SHUTDOWN_TIMEOUT: %w", err)
	}

	var cfg Config
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", env("POSTBOARD_ADDR", ":8080"), "listen address")
	fs.StringVar(&cfg.Driver, "driver", env("POSTBOARD_DRIVER", DriverBadger), "store driver: badger, postgres or memory")
	fs.StringVar(&cfg.DataDir, "data-dir", env("POSTBOARD_DATA_DIR", dbPath), "badger data directory")
	fs.StringVar(&cfg.DatabaseURL, "database-url", env("POSTBOARD_DATABASE_URL", ""), "postgres connection string")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", timeout, "graceful shutdown timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, nil
}

// Validate checks the configuration and reports every offending field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
