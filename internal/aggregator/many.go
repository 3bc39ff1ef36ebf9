package aggregator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
)

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Unit is one group of files linted together under one configuration.
type Unit struct {
	Filenames []string
	Config    *options.Config
}

// Launch records the outcome of one unit.
type Launch struct {
	Filenames   []string `json:"filenames"`
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Diagnostics int      `json:"diagnostics"`
}

// Result is the outcome of AggregateMany.
type Result struct {
	Diagnostics []diagnostic.Diagnostic
	Launches    []Launch
}

// Failed returns the number of units that did not complete.
func (r Result) Failed() int {
	n := 0
	for _, l := range r.Launches {
		if l.Status != StatusOK {
			n++
		}
	}
	return n
}

// AggregateMany aggregates every unit independently, at most Jobs at a time, and concatenates
// the diagnostics in unit order. A unit that times out or otherwise fails is reported in
// Launches and contributes nothing; a fatal error cancels all units and is returned.
func (a *Aggregator) AggregateMany(ctx context.Context, units []Unit) (Result, error) {
	a.logger.Info("aggregation starting", "units", len(units), "jobs", a.jobs)

	perUnit := make([][]diagnostic.Diagnostic, len(units))
	launches := make([]Launch, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, unit := range units {
		g.Go(func() error {
			a.logger.Debug("unit started", "#", i+1, "files", unit.Filenames)
			diags, err := a.Aggregate(gctx, unit.Filenames, unit.Config)
			if err != nil {
				if errors.IsFatal(err) || gctx.Err() != nil {
					return err
				}
				if errors.IsTimeout(err) {
					a.logger.Warn("unit timed out", "#", i+1, "files", unit.Filenames, "error", err)
				} else {
					a.logger.Error("unit failed", "#", i+1, "files", unit.Filenames, "error", err)
				}
				launches[i] = Launch{Filenames: unit.Filenames, Status: StatusFailed, Message: err.Error()}
				return nil
			}
			perUnit[i] = diags
			launches[i] = Launch{Filenames: unit.Filenames, Status: StatusOK, Diagnostics: len(diags)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	result.Launches = launches
	for _, diags := range perUnit {
		result.Diagnostics = append(result.Diagnostics, diags...)
	}
	a.logger.Info("aggregation finished", "units", len(units), "failed", result.Failed(), "diagnostics", len(result.Diagnostics))
	return result, nil
}
