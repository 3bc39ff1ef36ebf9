// Package linters adapts external linters to the common diagnostic model.
package linters

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/lintmux/internal/diagnostic"
	"github.com/scan-io-git/lintmux/internal/options"
	"github.com/scan-io-git/lintmux/internal/process"
	"github.com/scan-io-git/lintmux/pkg/shared/errors"
	"github.com/scan-io-git/lintmux/pkg/shared/files"
)

// CommandRunner runs a command to completion under a timeout.
type CommandRunner interface {
	Run(ctx context.Context, command []string) (process.Result, error)
	Timeout() time.Duration
}

// Adapter knows how to invoke one linter and how to read its output.
type Adapter interface {
	// Source is the tool the adapter drives.
	Source() diagnostic.Source
	// Args returns the tool arguments followed by the extra arguments from cfg.
	Args(cfg *options.Config) []string
	// Allowed reports whether an exit code means the tool ran to completion.
	Allowed(exitCode int) bool
	// Parse converts raw, non-empty stdout into diagnostics.
	Parse(filenames []string, out []byte) ([]diagnostic.Diagnostic, error)
}

// For returns the adapter for src.
func For(src diagnostic.Source) (Adapter, error) {
	switch src {
	case diagnostic.SourceFlake8:
		return Flake8{}, nil
	case diagnostic.SourcePylint:
		return Pylint{}, nil
	default:
		return nil, fmt.Errorf("no linter adapter for %q", src)
	}
}

// Command builds `<interpreter> -m <tool> <args...> <filenames...>`.
func Command(interpreter string, adapter Adapter, filenames []string, cfg *options.Config) []string {
	args := adapter.Args(cfg)
	command := make([]string, 0, 3+len(args)+len(filenames))
	command = append(command, interpreter, "-m", adapter.Source().String())
	command = append(command, args...)
	command = append(command, filenames...)
	return command
}

// Lint runs the adapter's tool on filenames and returns its diagnostics.
func Lint(ctx context.Context, runner CommandRunner, interpreter string, adapter Adapter, filenames []string, cfg *options.Config, logger hclog.Logger) ([]diagnostic.Diagnostic, error) {
	tool := adapter.Source().String()
	command := Command(interpreter, adapter, filenames, cfg)
	logger.Debug("running linter", "tool", tool, "cmd", command)

	res, err := runner.Run(ctx, command)
	if err != nil {
		return nil, fmt.Errorf("%s execution error: %w", tool, err)
	}

	if process.IsTimeout(res.ExitCode) {
		logger.Error("linter was likely killed by timeout", "tool", tool, "timeout", runner.Timeout())
		return nil, errors.NewTimeoutError(tool, runner.Timeout())
	}

	if !adapter.Allowed(res.ExitCode) {
		logger.Error("linter exited with a disallowed code", "tool", tool, "exitCode", res.ExitCode)
		return nil, errors.NewToolExitError(tool, res.ExitCode)
	}

	if len(bytes.TrimSpace(res.Stdout)) == 0 {
		logger.Debug("linter produced no output", "tool", tool)
		return nil, nil
	}

	diags, err := adapter.Parse(filenames, res.Stdout)
	if err != nil {
		logger.Error("failed to parse linter output", "tool", tool, "error", err)
		return nil, err
	}
	logger.Debug("linter finished", "tool", tool, "diagnostics", len(diags))
	return diags, nil
}

// usedFilename maps a path reported by a tool back to the input filename it refers to.
// Tools may echo paths resolved or as given, so both sides are compared in absolute form.
func usedFilename(tool string, filenames []string, path string) string {
	for _, filename := range filenames {
		if files.SamePath(filename, path) {
			return filename
		}
	}
	panic(fmt.Sprintf("unreachable: %s reported %q which matches no input file", tool, path))
}
