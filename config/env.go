package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Environment lists the settings which may be overridden by environment variables. Unset
// variables keep the values of Default().
type Environment struct {
	Port            uint16        `env:"PORT" envDefault:"3005"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"www"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	ReadBufferSize  int           `env:"READ_BUFFER_SIZE"`
	MaxBodySize     uint64        `env:"MAX_BODY_SIZE"`
	MaxHeaders      int           `env:"MAX_HEADERS"`
	DefaultFile     string        `env:"STATIC_DEFAULT_FILE"`
	MaxFileSize     int64         `env:"STATIC_MAX_FILE_SIZE"`
	RequestLineSize int           `env:"REQUEST_LINE_SIZE"`
}

// EnvPrefix prefixes every variable of the Environment.
const EnvPrefix = "MINIEXPRESS_"

// FromEnv parses MINIEXPRESS_* variables and overlays them on top of the default config.
func FromEnv() (*Config, Environment, error) {
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, e, errors.Wrap(err, "failed to parse environment")
	}

	return e.Apply(Default()), e, nil
}

// Apply overrides config fields with non-zero environment values.
func (e Environment) Apply(cfg *Config) *Config {
	if e.ReadTimeout > 0 {
		cfg.NET.ReadTimeout = e.ReadTimeout
	}

	if e.ReadBufferSize > 0 {
		cfg.NET.ReadBufferSize = e.ReadBufferSize
	}

	if e.MaxBodySize > 0 {
		cfg.Body.MaxSize = e.MaxBodySize
	}

	if e.MaxHeaders > 0 {
		cfg.Headers.Number.Maximal = e.MaxHeaders
	}

	if len(e.DefaultFile) > 0 {
		cfg.Static.DefaultFile = e.DefaultFile
	}

	if e.MaxFileSize > 0 {
		cfg.Static.MaxFileSize = e.MaxFileSize
	}

	if e.RequestLineSize > 0 {
		cfg.URI.RequestLineSize = e.RequestLineSize
	}

	return cfg
}
