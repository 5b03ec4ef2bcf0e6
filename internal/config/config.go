/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the service configuration from a YAML file and TWEETQL_* environment
// variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable that overrides a setting.
const EnvPrefix = "TWEETQL_"

// Config holds the runtime configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Movies MoviesConfig `yaml:"movies"`
	Log    LogConfig    `yaml:"log"`

	// SeedFile names a YAML file with users and tweets to load instead of the built-in seed.
	SeedFile string `yaml:"seed_file"`
}

// ServerConfig configures the HTTP servers.
type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	MetricsAddr        string        `yaml:"metrics_addr"`
	MaxBodySize        uint          `yaml:"max_body_size"`
	OperationCacheSize int           `yaml:"operation_cache_size"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

// MoviesConfig configures the movie provider client.
type MoviesConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is either text or json.
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:               ":4000",
			MetricsAddr:        ":9090",
			MaxBodySize:        10 << 20,
			OperationCacheSize: 256,
			ShutdownTimeout:    10 * time.Second,
		},
		Movies: MoviesConfig{
			BaseURL: "https://yts.mx/api/v2",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file at path on top of the defaults, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if len(path) > 0 {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return cfg.decode(f)
}

func (cfg *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Parse decodes YAML configuration data on top of the defaults without consulting the environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(bytes.NewReader(data)); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides settings from environment variables found by lookup.
func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	integer := func(name string, set func(int64)) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		set(i)
	}

	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
			return
		}
		*dst = d
	}

	str("ADDR", &cfg.Server.Addr)
	str("METRICS_ADDR", &cfg.Server.MetricsAddr)
	integer("MAX_BODY_SIZE", func(i int64) {
		if i < 0 {
			errs = append(errs, fmt.Errorf("%sMAX_BODY_SIZE: must be positive", EnvPrefix))
			return
		}
		cfg.Server.MaxBodySize = uint(i)
	})
	integer("OPERATION_CACHE_SIZE", func(i int64) {
		cfg.Server.OperationCacheSize = int(i)
	})
	duration("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	str("MOVIES_BASE_URL", &cfg.Movies.BaseURL)
	duration("MOVIES_TIMEOUT", &cfg.Movies.Timeout)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("SEED_FILE", &cfg.SeedFile)

	return errors.Join(errs...)
}

// Validate reports every invalid setting.
func (cfg *Config) Validate() error {
	var errs []error

	if len(cfg.Server.Addr) == 0 {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if len(cfg.Server.MetricsAddr) == 0 {
		errs = append(errs, errors.New("server.metrics_addr must not be empty"))
	}
	if cfg.Server.MaxBodySize == 0 {
		errs = append(errs, errors.New("server.max_body_size must be positive"))
	}
	if cfg.Server.OperationCacheSize <= 0 {
		errs = append(errs, errors.New("server.operation_cache_size must be positive"))
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if len(cfg.Movies.BaseURL) == 0 {
		errs = append(errs, errors.New("movies.base_url must not be empty"))
	}
	if cfg.Movies.Timeout <= 0 {
		errs = append(errs, errors.New("movies.timeout must be positive"))
	}
	if _, err := cfg.Log.level(); err != nil {
		errs = append(errs, err)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format))
	}

	return errors.Join(errs...)
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("log.level: unknown level %q", c.Level)
	}
	return level, nil
}

// NewLogger builds a logger writing to w at the configured level and format. Invalid settings fall
// back to info and text; Validate reports them.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}

	options := &slog.HandlerOptions{
		Level: level,
	}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
