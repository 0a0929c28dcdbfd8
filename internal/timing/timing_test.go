package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStop(t *testing.T) {
	t0 := time.Now()
	ctx := Start(context.Background(), t0)
	require.True(t, Started(ctx))

	d, err := Stop(ctx, t0.Add(5*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, d)
	assert.False(t, Started(ctx))
}

func TestStopWithoutStart(t *testing.T) {
	_, err := Stop(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStopConsumesStamp(t *testing.T) {
	t0 := time.Now()
	ctx := Start(context.Background(), t0)

	_, err := Stop(ctx, t0)
	require.NoError(t, err)

	_, err = Stop(ctx, t0.Add(time.Second))
	assert.ErrorIs(t, err, ErrAlreadyStopped)
}

func TestStopNeverNegative(t *testing.T) {
	t0 := time.Now()
	ctx := Start(context.Background(), t0)

	d, err := Stop(ctx, t0.Add(-time.Second))
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestStartDoesNotLeakIntoParent(t *testing.T) {
	parent := context.Background()
	a := Start(parent, time.Now())
	b := Start(parent, time.Now())

	assert.False(t, Started(parent))

	_, err := Stop(a, time.Now())
	require.NoError(t, err)
	assert.True(t, Started(b), "stopping one request must not consume another's stamp")
}

func TestMilliseconds(t *testing.T) {
	tests := []struct {
		name      string
		d         time.Duration
		precision int
		want      float64
	}{
		{"three decimals", 1234567 * time.Nanosecond, 3, 1.235},
		{"whole ms", 1234567 * time.Nanosecond, 0, 1},
		{"unrounded", 1234567 * time.Nanosecond, -1, 1.234567},
		{"zero", 0, 3, 0},
		{"seconds", 2 * time.Second, 3, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Milliseconds(tt.d, tt.precision), 1e-9)
		})
	}
}
