package process

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	var stderr bytes.Buffer
	r := New(5*time.Second, &stderr, nil)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"})
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, IsTimeout(res.ExitCode))
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
	assert.Equal(t, "err\n", stderr.String(), "stderr is written through")
}

func TestRunSuccess(t *testing.T) {
	r := New(5*time.Second, nil, nil)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "printf '[]'"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "[]", string(res.Stdout))
}

func TestRunTimeout(t *testing.T) {
	r := New(100*time.Millisecond, nil, nil)

	start := time.Now()
	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo partial; exec sleep 10"})
	require.NoError(t, err)

	assert.True(t, IsTimeout(res.ExitCode))
	assert.Empty(t, res.Stdout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunExitedWithChildHoldingStderr(t *testing.T) {
	r := New(300*time.Millisecond, nil, nil)

	res, err := r.Run(context.Background(), []string{"sh", "-c", "(sleep 3 >&2) & echo '[]'; exit 0"})
	require.NoError(t, err)

	assert.False(t, IsTimeout(res.ExitCode))
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "[]\n", string(res.Stdout))
}

func TestRunParentCancelled(t *testing.T) {
	r := New(5*time.Second, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, []string{"sh", "-c", "exit 0"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunErrors(t *testing.T) {
	r := New(time.Second, nil, nil)

	_, err := r.Run(context.Background(), nil)
	assert.EqualError(t, err, "empty command")

	_, err = r.Run(context.Background(), []string{"/nonexistent/lintmux-binary"})
	assert.ErrorContains(t, err, "failed to run")
}
