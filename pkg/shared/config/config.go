package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

const (
	DefaultInterpreter = "python3"
	DefaultTimeout     = 1000 * time.Second
	DefaultJobs        = 1
)

type Config struct {
	Logger Logger `yaml:"logger"`
	Runner Runner `yaml:"runner"`
	Lint   Lint   `yaml:"lint"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// Runner configures how linter processes are launched.
type Runner struct {
	Interpreter string        `yaml:"interpreter"` // Python interpreter used as `<interpreter> -m <tool>`
	Timeout     time.Duration `yaml:"timeout"`     // Per-process timeout
	Jobs        int           `yaml:"jobs"`        // Number of units aggregated concurrently
}

// Lint holds the linting options passed down to the aggregation pipeline.
type Lint struct {
	IgnoreInfileConfigFor []string `yaml:"ignore_infile_config_for"`
	Flake8                []string `yaml:"flake8"`
	Pylint                []string `yaml:"pylint"`
	NoFlake8              bool     `yaml:"no_flake8"`
	AllowedOnecharNames   []string `yaml:"allowed_onechar_names"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads the YAML configuration from configPath and fills in defaults.
// An empty configPath yields the default configuration.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		if err := LoadYAML(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
		}
	}
	applyDefaults(config)

	return config, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// LogJSON reports whether logs are written as JSON. A nil Config logs plain text.
func (c *Config) LogJSON() bool {
	return c != nil && isTrue(c.Logger.JSONFormat)
}

// LogLocation reports whether log lines carry the caller location.
func (c *Config) LogLocation() bool {
	return c != nil && isTrue(c.Logger.IncludeLocation)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func applyDefaults(cfg *Config) {
	cfg.Runner.Interpreter = orDefault(cfg.Runner.Interpreter, DefaultInterpreter)
	cfg.Runner.Timeout = orDefault(cfg.Runner.Timeout, DefaultTimeout)
	cfg.Runner.Jobs = orDefault(cfg.Runner.Jobs, DefaultJobs)
}

// orDefault returns value unless it is the zero value of its type.
func orDefault[T comparable](value, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
