// Package config loads orlando settings from a YAML file, an optional .env
// file and ORLANDO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/justinelliottcobb/Orlando/pkg/common/logging"
	"github.com/justinelliottcobb/Orlando/pkg/common/validation"
	"github.com/justinelliottcobb/Orlando/pkg/metrics"
	"github.com/justinelliottcobb/Orlando/pkg/pipeline"
)

// EnvPrefix prefixes every environment variable read by Load:
// ORLANDO_LOGGING_LEVEL overrides logging.level, and so on.
const EnvPrefix = "ORLANDO"

const module = "config"

// Config is the root configuration.
type Config struct {
	Logging  logging.Config `yaml:"logging" mapstructure:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
}

// MetricsConfig controls Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool              `yaml:"enabled" mapstructure:"enabled"`
	Namespace string            `yaml:"namespace" mapstructure:"namespace" validate:"required,max=64,excludesall=-./"`
	Labels    map[string]string `yaml:"labels" mapstructure:"labels"`
}

// PipelineConfig holds defaults for pipelines built from this configuration.
type PipelineConfig struct {
	Name   string `yaml:"name" mapstructure:"name" validate:"required,max=128"`
	Fusion bool   `yaml:"fusion" mapstructure:"fusion"`
}

// Default returns the configuration used when no file or variable sets
// anything.
func Default() *Config {
	return &Config{
		Logging: logging.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: metrics.DefaultNamespace,
		},
		Pipeline: PipelineConfig{
			Name:   pipeline.DefaultName,
			Fusion: true,
		},
	}
}

// ApplyDefaults fills the empty fields.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = metrics.DefaultNamespace
	}
	if c.Pipeline.Name == "" {
		c.Pipeline.Name = pipeline.DefaultName
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(module, c)
}

// LoaderConfig holds optional file paths for Load.
type LoaderConfig struct {
	ConfigFile string // YAML file (optional)
	EnvFile    string // .env file (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets the YAML file to read.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets a .env file whose variables are loaded before the
// environment is read. Variables already set in the process win.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load reads the configuration. Precedence, lowest first: defaults, the
// YAML file, the .env file, the process environment.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	v := viper.New()
	setDefaults(v, Default())

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", lc.ConfigFile, err)
		}
	}

	if lc.EnvFile != "" {
		if _, err := os.Stat(lc.EnvFile); err == nil {
			if err := godotenv.Load(lc.EnvFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", lc.EnvFile, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.no_color", d.Logging.NoColor)
	v.SetDefault("logging.timestamp", d.Logging.Timestamp)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("pipeline.name", d.Pipeline.Name)
	v.SetDefault("pipeline.fusion", d.Pipeline.Fusion)
}

// PipelineOptions turns the configuration into options for pipeline.New.
// When metrics are enabled the collectors are registered with reg, or with
// the default Prometheus registerer if reg is nil.
func (c *Config) PipelineOptions(reg prometheus.Registerer) ([]pipeline.Option, error) {
	logger, err := logging.New(c.Logging)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithName(c.Pipeline.Name),
		pipeline.WithLogger(logger),
	}
	if !c.Pipeline.Fusion {
		opts = append(opts, pipeline.Unfused())
	}
	if c.Metrics.Enabled {
		registry := metrics.NewRegistryWithConfig(metrics.Config{
			Enabled:   true,
			Registry:  reg,
			Namespace: c.Metrics.Namespace,
			Labels:    prometheus.Labels(c.Metrics.Labels),
		})
		opts = append(opts, pipeline.WithMetrics(registry, c.Pipeline.Name))
	}
	return opts, nil
}
