package microdi

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the file form of container options.
//
//	name: app
//	default_lifetime: transient
//	log_level: debug
type Config struct {
	Name            string    `yaml:"name"`
	DefaultLifetime *Lifetime `yaml:"default_lifetime"`
	LogLevel        string    `yaml:"log_level"`
}

// ParseConfig decodes a YAML document.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse container config: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads and decodes a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read container config: %w", err)
	}

	return ParseConfig(data)
}

// Options converts the config into container options. A log level builds a
// production zap logger at that level; without one the logger is left unset.
func (cfg Config) Options() ([]Option, error) {
	var opts []Option

	if cfg.Name != "" {
		opts = append(opts, WithName(cfg.Name))
	}

	if cfg.DefaultLifetime != nil {
		opts = append(opts, WithDefaultLifetime(*cfg.DefaultLifetime))
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("container config log_level: %w", err)
		}

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)

		logger, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}

		opts = append(opts, WithLogger(logger.Named("microdi")))
	}

	return opts, nil
}

// NewFromConfig creates a root container from a config file.
func NewFromConfig(path string, extra ...Option) (*Container, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return New(append(opts, extra...)...), nil
}
