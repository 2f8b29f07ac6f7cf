package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: base, want: exitFailure},
		{name: "exit error", err: exitError(foundry.ExitFileNotFound, "missing", base), want: foundry.ExitFileNotFound},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", exitError(foundry.ExitSignalInt, "cancelled", base)), want: foundry.ExitSignalInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := exitError(foundry.ExitInvalidArgument, "Invalid thing", base)

	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "Invalid thing: boom")
	assert.Contains(t, err.Error(), fmt.Sprintf("(exit code %d)", foundry.ExitInvalidArgument))

	noCause := &ExitError{Code: 3, Message: "bare"}
	assert.Equal(t, "bare (exit code 3)", noCause.Error())
}
