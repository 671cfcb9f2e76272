package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Addr:            ":8080",
		Driver:          DriverBadger,
		DataDir:         "data/badger",
		ShutdownTimeout: 10 * time.Second,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfigPrecedence(t *testing.T) {
	env := envMap(map[string]string{
		"POSTBOARD_ADDR":             "127.0.0.1:9000",
		"POSTBOARD_DRIVER":           DriverPostgres,
		"POSTBOARD_DATABASE_URL":     "postgres://localhost/postboard",
		"POSTBOARD_SHUTDOWN_TIMEOUT": "3s",
	})

	cfg, err := ParseConfig(nil, env)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "postgres://localhost/postboard", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)

	cfg, err = ParseConfig([]string{"--addr", ":7000", "--driver", "memory", "--shutdown-timeout", "1s"}, env)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig(nil, envMap(map[string]string{"POSTBOARD_SHUTDOWN_TIMEOUT": "soon"}))
	assert.ErrorContains(t, err, "POSTBOARD_SHUTDOWN_TIMEOUT")

	_, err = ParseConfig([]string{"extra"}, envMap(nil))
	assert.ErrorContains(t, err, "unexpected arguments: extra")

	_, err = ParseConfig([]string{"--no-such-flag"}, envMap(nil))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Addr: ":8080", Driver: DriverBadger, DataDir: "data/badger", ShutdownTimeout: time.Second}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"memory needs no paths", func(c *Config) { c.Driver = DriverMemory; c.DataDir = "" }, ""},
		{"unknown driver", func(c *Config) { c.Driver = "sqlite" }, "Driver"},
		{"badger without data dir", func(c *Config) { c.DataDir = "" }, "DataDir"},
		{"postgres without url", func(c *Config) { c.Driver = DriverPostgres }, "DatabaseURL"},
		{"malformed addr", func(c *Config) { c.Addr = "8080" }, "Addr"},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "ShutdownTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
