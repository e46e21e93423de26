package borrowsvc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	got, err := ComputeTotal(3, 100)
	require.NoError(t, err)
	require.Equal(t, 300.0, got)

	got, err = ComputeTotal(1, 49.5)
	require.NoError(t, err)
	require.Equal(t, 49.5, got)

	got, err = ComputeTotal(7, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

func TestComputeTotal_InvalidDays(t *testing.T) {
	_, err := ComputeTotal(0, 100)
	require.Equal(t, ErrInvalidDays, Code(err))

	_, err = ComputeTotal(-3, 100)
	require.Equal(t, ErrInvalidDays, Code(err))
}

func TestComputeTotal_NegativePrice(t *testing.T) {
	_, err := ComputeTotal(2, -1)
	require.Equal(t, ErrInvalidPrice, Code(err))
}

func TestComputeTotal_MonotonicInDays(t *testing.T) {
	prev := 0.0
	for days := 1; days <= 30; days++ {
		got, err := ComputeTotal(days, 42)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}
