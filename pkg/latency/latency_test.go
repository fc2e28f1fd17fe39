package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoneNeverWaits(t *testing.T) {
	p := None()

	start := time.Now()
	for _, op := range []Op{OpList, OpGet, OpCreate, OpUpdate, OpDelete, OpRun} {
		require.NoError(t, p.Wait(context.Background(), op))
	}
	require.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestJitterHonorsCancellation(t *testing.T) {
	p := NewJitter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Wait(ctx, OpRun)
	require.ErrorIs(t, err, context.Canceled)
}

func TestJitterWaitsForShortOps(t *testing.T) {
	p := NewJitter()

	start := time.Now()
	require.NoError(t, p.Wait(context.Background(), OpGet))
	elapsed := time.Since(start)
	require.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	require.Less(t, elapsed, time.Second)
}
