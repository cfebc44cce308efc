package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/nlogcast/core"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "NLOG_"

const (
	// DefaultBufferSize is the formatting buffer capacity, terminator included
	DefaultBufferSize = 2048
	// MaxBufferSize bounds BufferSize
	MaxBufferSize = 1 << 20

	FormatText = "text"
	FormatJSON = "json"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	// ErrConfigNotValid wraps every validation and parsing failure
	ErrConfigNotValid = errors.New("logger configuration not valid")
)

// Config describes the logger threshold and the built-in receivers
type Config struct {
	Level      core.Level    `env:"LEVEL" envDefault:"INFO" yaml:"level"`
	Format     string        `env:"FORMAT" envDefault:"text" yaml:"format"`
	BufferSize int           `env:"BUFFER_SIZE" envDefault:"2048" yaml:"bufferSize"`
	Console    ConsoleConfig `envPrefix:"CONSOLE_" yaml:"console"`
	File       FileConfig    `envPrefix:"FILE_" yaml:"file"`
}

// ConsoleConfig configures the built-in "Console" receiver
type ConsoleConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true" yaml:"enabled"`
	Stderr  bool   `env:"STDERR" envDefault:"false" yaml:"stderr"`
	Color   string `env:"COLOR" envDefault:"auto" yaml:"color"`
}

// FileConfig configures the built-in "File" receiver
type FileConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false" yaml:"enabled"`
	Path    string `env:"PATH" envDefault:"nlog.log" yaml:"path"`
	Append  bool   `env:"APPEND" envDefault:"true" yaml:"append"`
	// FlushEach writes every line through to the file as it is logged, so
	// nothing is lost when the process exits without closing the logger
	FlushEach bool `env:"FLUSH_EACH" envDefault:"true" yaml:"flushEach"`
}

// Default returns the configuration used when nothing else is provided:
// INFO threshold, text lines on stdout, no file.
func Default() Config {
	return Config{
		Level:      core.InfoLevel,
		Format:     FormatText,
		BufferSize: DefaultBufferSize,
		Console: ConsoleConfig{
			Enabled: true,
			Color:   ColorAuto,
		},
		File: FileConfig{
			Enabled:   false,
			Path:      "nlog.log",
			Append:    true,
			FlushEach: true,
		},
	}
}

// Load reads the configuration from NLOG_* environment variables. A .env
// file in the working directory, when present, is loaded first; variables
// already set in the environment win over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: reading .env: %s", ErrConfigNotValid, err.Error())
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file. Keys missing from the file keep
// their Default values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %s", ErrConfigNotValid, path, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once
func (c Config) Validate() error {
	var errs error

	if !c.Level.Valid() {
		errs = multierr.Append(errs, fmt.Errorf("level %s is not valid", c.Level))
	}
	if c.BufferSize < 2 || c.BufferSize > MaxBufferSize {
		errs = multierr.Append(errs, fmt.Errorf("buffer size %d is out of valid range (2-%d)", c.BufferSize, MaxBufferSize))
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		errs = multierr.Append(errs, fmt.Errorf("format %q is not one of text, json", c.Format))
	}
	switch c.Console.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = multierr.Append(errs, fmt.Errorf("console color %q is not one of auto, always, never", c.Console.Color))
	}
	if c.File.Enabled && c.File.Path == "" {
		errs = multierr.Append(errs, errors.New("file path is required when the file receiver is enabled"))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrConfigNotValid, errs)
	}
	return nil
}
