// Package aggregator runs the configured linters over groups of files and merges their diagnostics.
package aggregator

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/linters"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/internal/overrides"
	"github.com/scan-io-git/lintmux/internal/tweaks"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

// InfileChecker reports disallowed in-file configuration.
type InfileChecker interface {
	Check(filenames []string, ignored []string) ([]diagnostic.Diagnostic, error)
}

// Tables are the read-only lookup tables shared by every aggregation.
type Tables struct {
	Overrides overrides.Table
	Tweaks    tweaks.Table
}

// DefaultTables returns the built-in override and tweak tables.
func DefaultTables() Tables {
	return Tables{
		Overrides: overrides.Default(),
		Tweaks:    tweaks.Default(),
	}
}

// Options configure an Aggregator.
type Options struct {
	Interpreter string // Python interpreter used to launch the linters
	Jobs        int    // Maximum number of units aggregated concurrently
}

// Aggregator runs the linters for a unit and post-processes the merged diagnostics.
type Aggregator struct {
	runner      linters.CommandRunner
	checker     InfileChecker
	tables      Tables
	interpreter string
	jobs        int
	logger      hclog.Logger
}

// New creates an Aggregator.
func New(runner linters.CommandRunner, checker InfileChecker, tables Tables, opts Options, logger hclog.Logger) *Aggregator {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Aggregator{
		runner:      runner,
		checker:     checker,
		tables:      tables,
		interpreter: opts.Interpreter,
		jobs:        opts.Jobs,
		logger:      logger,
	}
}

// Aggregate lints filenames with cfg and returns the diagnostics ordered by the position
// of their file in filenames, then by line and column.
// Any failure aborts the whole call; no partial list is returned. A nil cfg means no options.
func (a *Aggregator) Aggregate(ctx context.Context, filenames []string, cfg *options.Config) ([]diagnostic.Diagnostic, error) {
	if cfg == nil {
		cfg = options.New()
	}
	var infileResult, flake8Result, pylintResult []diagnostic.Diagnostic

	g, gctx := errgroup.WithContext(ctx)
	if ignored := cfg.Strings(options.IgnoreInfileConfigFor); len(ignored) > 0 {
		g.Go(func() error {
			var err error
			infileResult, err = a.checker.Check(filenames, ignored)
			if err != nil {
				return fmt.Errorf("in-file config check failed: %w", err)
			}
			return nil
		})
	}
	if !cfg.Bool(options.NoFlake8) {
		g.Go(func() error {
			var err error
			flake8Result, err = linters.Lint(gctx, a.runner, a.interpreter, linters.Flake8{}, filenames, cfg, a.logger)
			return err
		})
	}
	g.Go(func() error {
		var err error
		pylintResult, err = linters.Lint(gctx, a.runner, a.interpreter, linters.Pylint{}, filenames, cfg, a.logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]diagnostic.Diagnostic, 0, len(infileResult)+len(flake8Result)+len(pylintResult))
	merged = append(merged, infileResult...)
	merged = append(merged, flake8Result...)
	merged = append(merged, pylintResult...)

	result := overrides.Resolve(merged, a.tables.Overrides)
	result = tweaks.Apply(result, a.tables.Tweaks, cfg)
	Sort(filenames, result)

	a.logger.Debug("unit aggregated", "files", len(filenames), "raw", len(merged), "diagnostics", len(result))
	return result, nil
}

// Sort orders diags in place by the index of their path in filenames, then by line and column.
// Ties keep their relative order.
func Sort(filenames []string, diags []diagnostic.Diagnostic) {
	indices := make(map[string]int, len(filenames))
	for i, fn := range filenames {
		path := files.ProperPath(fn)
		if _, seen := indices[path]; !seen {
			indices[path] = i
		}
	}
	index := func(d diagnostic.Diagnostic) int {
		i, ok := indices[d.Path]
		if !ok {
			panic(fmt.Sprintf("unreachable: diagnostic for %q which is not an input file", d.Path))
		}
		return i
	}

	sort.SliceStable(diags, func(i, j int) bool {
		ii, ij := index(diags[i]), index(diags[j])
		if ii != ij {
			return ii < ij
		}
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
}
