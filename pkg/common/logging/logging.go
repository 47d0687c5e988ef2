// Package logging builds the zerolog loggers used by orlando components.
package logging

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	oerrors "github.com/justinelliottcobb/Orlando/pkg/common/errors"
)

const module = "logging"

// Field names shared by every component that logs.
const (
	FieldComponent = "component"
	FieldPipeline  = "pipeline"
	FieldCollector = "collector"
	FieldPulled    = "pulled"
	FieldEmitted   = "emitted"
	FieldStopped   = "stopped"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	validFormats = []string{FormatJSON, FormatConsole}
	validOutputs = []string{"stdout", "stderr"}
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
}

// DefaultConfig returns the configuration used when nothing is set: info
// level, console output on stderr, with timestamps.
func DefaultConfig() Config {
	cfg := Config{Timestamp: true}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills the empty fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate checks the level, format and output names.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, strings.ToLower(c.Level)) {
		return oerrors.NewValidationError(module, "level", c.Level, "unknown level").
			WithHint("use one of " + strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Format)) {
		return oerrors.NewValidationError(module, "format", c.Format, "unknown format").
			WithHint("use json or console")
	}
	if !slices.Contains(validOutputs, strings.ToLower(c.Output)) {
		return oerrors.NewValidationError(module, "output", c.Output, "unknown output").
			WithHint("use stdout or stderr")
	}
	return nil
}

// New builds a logger writing to the configured output.
func New(cfg Config) (zerolog.Logger, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return zerolog.Nop(), err
	}
	var out io.Writer = os.Stderr
	if strings.ToLower(cfg.Output) == "stdout" {
		out = os.Stdout
	}
	return NewWithWriter(cfg, out)
}

// NewWithWriter is New writing to w instead of the configured output.
func NewWithWriter(cfg Config, w io.Writer) (zerolog.Logger, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return zerolog.Nop(), err
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), oerrors.NewValidationError(module, "level", cfg.Level, err.Error())
	}

	if strings.ToLower(cfg.Format) == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).Level(level)
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	return zl, nil
}

// Component tags l with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}
