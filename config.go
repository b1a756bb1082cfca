package raftstorage

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const envPrefix = "RAFTSTORAGE"

type Config struct {
	LogLevel        string `toml:"log_level" envconfig:"LOG_LEVEL"`   // default: info
	LogFormat       string `toml:"log_format" envconfig:"LOG_FORMAT"` // console | json, default: console
	InitialCapacity int    `toml:"initial_capacity" envconfig:"INITIAL_CAPACITY"`

	// logOutput overrides stderr, tests only
	logOutput io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "console",
		InitialCapacity: 1024,
	}
}

// LoadConfig starts from DefaultConfig, applies the TOML file at path (if
// any) and then RAFTSTORAGE_* environment variables.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, errors.Wrapf(err, "decode config file %s", path)
		}
	}
	if err := envconfig.Process(envPrefix, config); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel)); err != nil {
		return errors.Wrapf(err, "invalid log level %q", config.LogLevel)
	}
	switch config.LogFormat {
	case "", "console", "json":
	default:
		return errors.Errorf("invalid log format %q", config.LogFormat)
	}
	if config.InitialCapacity < 0 {
		return errors.Errorf("invalid initial capacity %d", config.InitialCapacity)
	}
	return nil
}

func (config *Config) newLogger() zerolog.Logger {
	var out io.Writer = os.Stderr
	if config.logOutput != nil {
		out = config.logOutput
	}
	if config.LogFormat != "json" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: config.logOutput != nil}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("component", "raftstorage").Logger()
}
