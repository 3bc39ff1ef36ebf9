package config

import (
	"fmt"
	"strings"
	"time"
)

// MaxTimeout bounds the per-process timeout accepted from configuration.
const MaxTimeout = 1 * time.Hour

var knownLinters = []string{"lintmux", "flake8", "pylint", "all"}

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateRunnerConfig(&cfg.Runner); err != nil {
		return fmt.Errorf("YAML global config: runner directive is invalid: %w", err)
	}
	if err := ValidateLintConfig(&cfg.Lint); err != nil {
		return fmt.Errorf("YAML global config: lint directive is invalid: %w", err)
	}
	return nil
}

// ValidateRunnerConfig checks if the runner configurations have valid values.
func ValidateRunnerConfig(runner *Runner) error {
	if runner == nil {
		return fmt.Errorf("runner configuration is nil")
	}
	if strings.TrimSpace(runner.Interpreter) == "" {
		return fmt.Errorf("interpreter must not be empty")
	}
	if runner.Jobs < 1 {
		return fmt.Errorf("jobs must be a positive integer: %d", runner.Jobs)
	}
	if runner.Timeout == 0 {
		return fmt.Errorf("timeout must not be zero")
	}
	return validateDuration(runner.Timeout, "timeout", MaxTimeout)
}

// ValidateLintConfig checks that in-file configuration is only ignored for known linters.
func ValidateLintConfig(lint *Lint) error {
	if lint == nil {
		return fmt.Errorf("lint configuration is nil")
	}
	for _, name := range lint.IgnoreInfileConfigFor {
		if !isIn(strings.ToLower(name), knownLinters) {
			return fmt.Errorf("unknown linter %q in ignore_infile_config_for, expected one of: %s", name, strings.Join(knownLinters, ", "))
		}
	}
	for _, name := range lint.AllowedOnecharNames {
		if len([]rune(name)) != 1 {
			return fmt.Errorf("allowed_onechar_names entry %q is not a single character", name)
		}
	}
	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %s: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%s duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

func isIn(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
