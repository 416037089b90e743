package mcvierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(SimulatorViolation, "bad probability %v", 1.2)
	require.True(t, Is(err, SimulatorViolation))
	require.False(t, Is(err, InvalidArgument))
}

func TestIsFalseForPlainError(t *testing.T) {
	require.False(t, Is(errors.New("plain"), InvalidArgument))
}

func TestUnwrapReturnsUnderlyingError(t *testing.T) {
	err := New(BudgetExceeded, "iteration cap reached")
	require.Error(t, errors.Unwrap(err))
}
