package errors

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"tool exit", NewToolExitError("flake8", 2), true},
		{"wrapped tool exit", fmt.Errorf("lint: %w", NewToolExitError("pylint", 32)), true},
		{"malformed record", NewMalformedRecordError("pylint", "line", "string"), true},
		{"timeout", NewTimeoutError("pylint", time.Second), false},
		{"plain", fmt.Errorf("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 32, ExitCode(fmt.Errorf("wrapped: %w", NewToolExitError("pylint", 32))))
	assert.Equal(t, 2, ExitCode(NewCommandError(fmt.Errorf("units failed"), 2)))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("anything else")))
}

func TestTimeoutErrorMessage(t *testing.T) {
	err := NewTimeoutError("flake8", 1500*time.Millisecond)
	assert.True(t, IsTimeout(err))
	assert.EqualError(t, err, "timeout from flake8 after 1.5s")
}
