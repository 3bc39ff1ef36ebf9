package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
)

// TimeoutExitCode is reported instead of a real exit code when the process was killed by timeout.
// Real exit codes are never negative apart from -1 for signal deaths, so the value cannot collide.
const TimeoutExitCode = -124

// killGrace bounds how long Run waits for output pipes after the process has been killed.
const killGrace = 2 * time.Second

// Result is the outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// IsTimeout reports whether code is the timeout sentinel.
func IsTimeout(code int) bool {
	return code == TimeoutExitCode
}

// Runner launches external processes with a fixed timeout.
type Runner struct {
	timeout time.Duration
	stderr  io.Writer
	logger  hclog.Logger
}

// New creates a Runner. Process stderr is written through to stderr as it is produced.
func New(timeout time.Duration, stderr io.Writer, logger hclog.Logger) *Runner {
	if stderr == nil {
		stderr = io.Discard
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{
		timeout: timeout,
		stderr:  stderr,
		logger:  logger,
	}
}

// Timeout returns the per-process timeout.
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Run executes command and waits for it to exit or be killed.
// A non-zero exit is not an error; a timeout yields TimeoutExitCode and no output.
func (r *Runner) Run(ctx context.Context, command []string) (Result, error) {
	if len(command) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, command[0], command[1:]...)
	cmd.WaitDelay = killGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(r.stderr, &stderr)

	r.logger.Debug("running command", "cmd", cmd.Args, "timeout", r.timeout)
	start := time.Now()
	err := cmd.Run()

	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	// A process that exited on its own is never a timeout, even when a child it left behind kept
	// the output pipes open past the deadline. Output written after exit is cut off after killGrace.
	exited := cmd.ProcessState != nil && cmd.ProcessState.Exited()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && !exited {
		r.logger.Debug("command killed by timeout", "cmd", command[0], "elapsed", time.Since(start))
		return Result{ExitCode: TimeoutExitCode}, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
		case errors.Is(err, exec.ErrWaitDelay):
			r.logger.Warn("command exited but its output pipes stayed open", "cmd", command[0], "grace", killGrace)
		default:
			return Result{}, fmt.Errorf("failed to run %q: %w", command[0], err)
		}
	}
	result := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}

	r.logger.Debug("command finished", "cmd", command[0], "exitCode", result.ExitCode, "elapsed", time.Since(start))
	return result, nil
}
