package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))

	generated := WithRequestID(context.Background(), "")
	assert.Len(t, GetRequestID(generated), 36)

	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestSymbol(t *testing.T) {
	ctx := WithSymbol(context.Background(), "BTC-USD")
	assert.Equal(t, "BTC-USD", GetSymbol(ctx))
	assert.Equal(t, "", GetSymbol(context.Background()))
}

func TestWait(t *testing.T) {
	t.Run("instant clock returns immediately", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, Wait(context.Background(), InstantClock{}, time.Hour))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("cancelled context wins", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Wait(ctx, RealClock{}, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero duration skips the clock", func(t *testing.T) {
		assert.NoError(t, Wait(context.Background(), RealClock{}, 0))
	})
}

func TestSimulatedClock(t *testing.T) {
	start := time.Unix(1_700_000_000, 0).UTC()
	clock := NewSimulatedClock(start)
	assert.Equal(t, start, clock.Now())

	require.NoError(t, Wait(context.Background(), clock, 3*time.Millisecond))
	assert.Equal(t, start.Add(3*time.Millisecond), clock.Now())

	require.NoError(t, Wait(context.Background(), clock, 0))
	assert.Equal(t, start.Add(3*time.Millisecond), clock.Now())

	assert.Equal(t, start.Add(4*time.Millisecond), clock.Advance(time.Millisecond))
	assert.Equal(t, start.Add(4*time.Millisecond), clock.Advance(-time.Second))
}
