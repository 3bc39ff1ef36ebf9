package lint

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"

	"github.com/scan-io-git/lintmux/internal/aggregator"
	"github.com/scan-io-git/lintmux/internal/git"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/pkg/shared/config"
)

var pythonExts = []string{"py"}

// hasFlags reports whether any flag was set on the command line.
func hasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// collectFiles returns the files to lint, either given explicitly or taken from git status.
func collectFiles(opts *RunOptionsLint) ([]string, error) {
	if !opts.Changed {
		return opts.Files, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	changed, err := git.ChangedFiles(wd, pythonExts)
	if err != nil {
		return nil, err
	}
	return changed, nil
}

// lintConfig merges command line overrides into the configured lint options.
func lintConfig(lint config.Lint, opts *RunOptionsLint) *options.Config {
	if len(opts.AdditionalArgs) > 0 {
		lint.Pylint = append(slices.Clone(lint.Pylint), opts.AdditionalArgs...)
	}
	if opts.NoFlake8 {
		lint.NoFlake8 = true
	}
	return options.FromLint(lint)
}

// buildUnits groups filenames into aggregation units.
func buildUnits(filenames []string, cfg *options.Config, perFile bool) []aggregator.Unit {
	if len(filenames) == 0 {
		return nil
	}
	if !perFile {
		return []aggregator.Unit{{Filenames: filenames, Config: cfg}}
	}
	units := make([]aggregator.Unit, 0, len(filenames))
	for _, f := range filenames {
		units = append(units, aggregator.Unit{Filenames: []string{f}, Config: cfg})
	}
	return units
}

// resolveJobs prefers the command line value over the configured one.
func resolveJobs(flagJobs, cfgJobs int) int {
	if flagJobs > 0 {
		return flagJobs
	}
	if cfgJobs > 0 {
		return cfgJobs
	}
	return config.DefaultJobs
}
