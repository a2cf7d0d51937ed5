package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0))
	assert.Nil(t, NewRateLimiter(-1))
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(3)
	require.NotNil(t, rl)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Allow("client-a"))
	}

	err := rl.Allow("client-a")
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 3, rlErr.Limit)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter(1)

	require.NoError(t, rl.Allow("client-a"))
	require.Error(t, rl.Allow("client-a"))
	require.NoError(t, rl.Allow("client-b"))
}
