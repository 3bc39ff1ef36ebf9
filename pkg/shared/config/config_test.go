package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json_format: true
runner:
  interpreter: /usr/bin/python3.12
  timeout: 30s
  jobs: 4
lint:
  ignore_infile_config_for: [pylint]
  flake8: ["--max-line-length=100"]
  pylint: ["--disable=C0114"]
  no_flake8: true
  allowed_onechar_names: [i, j]
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.LogJSON())
	assert.False(t, cfg.LogLocation())
	assert.Equal(t, "/usr/bin/python3.12", cfg.Runner.Interpreter)
	assert.Equal(t, 30*time.Second, cfg.Runner.Timeout)
	assert.Equal(t, 4, cfg.Runner.Jobs)
	assert.Equal(t, []string{"pylint"}, cfg.Lint.IgnoreInfileConfigFor)
	assert.Equal(t, []string{"--max-line-length=100"}, cfg.Lint.Flake8)
	assert.Equal(t, []string{"--disable=C0114"}, cfg.Lint.Pylint)
	assert.True(t, cfg.Lint.NoFlake8)
	assert.Equal(t, []string{"i", "j"}, cfg.Lint.AllowedOnecharNames)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultInterpreter, cfg.Runner.Interpreter)
	assert.Equal(t, DefaultTimeout, cfg.Runner.Timeout)
	assert.Equal(t, DefaultJobs, cfg.Runner.Jobs)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLogFlags(t *testing.T) {
	var nilCfg *Config
	assert.False(t, nilCfg.LogJSON())
	assert.False(t, nilCfg.LogLocation())

	enabled, disabled := true, false
	cfg := Default()
	cfg.Logger.JSONFormat = &disabled
	cfg.Logger.IncludeLocation = &enabled
	assert.False(t, cfg.LogJSON())
	assert.True(t, cfg.LogLocation())
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "python3", orDefault("", "python3"))
	assert.Equal(t, "pypy3", orDefault("pypy3", "python3"))
	assert.Equal(t, 3, orDefault(3, DefaultJobs))
	assert.Equal(t, DefaultTimeout, orDefault(time.Duration(0), DefaultTimeout))
}

func TestNewConfigErrors(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = NewConfig(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = NewConfig(writeConfig(t, "unknown_section: {}\n"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "negative jobs",
			mutate:  func(c *Config) { c.Runner.Jobs = -1 },
			wantErr: "jobs must be a positive integer",
		},
		{
			name:    "timeout too long",
			mutate:  func(c *Config) { c.Runner.Timeout = 2 * time.Hour },
			wantErr: "exceeds maximum",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Runner.Timeout = -time.Second },
			wantErr: "cannot be negative",
		},
		{
			name:    "unknown linter",
			mutate:  func(c *Config) { c.Lint.IgnoreInfileConfigFor = []string{"mypy"} },
			wantErr: "unknown linter",
		},
		{
			name:    "multi char name",
			mutate:  func(c *Config) { c.Lint.AllowedOnecharNames = []string{"ab"} },
			wantErr: "not a single character",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
