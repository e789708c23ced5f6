package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}

	results := Map(context.Background(), items, 2, func(ctx context.Context, i int, n int) (int, error) {
		// later items finish first
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, n := range items {
		assert.NoError(t, results[i].Err)
		assert.Equal(t, n*10, results[i].Value)
	}
}

func TestMapKeepsPerItemErrors(t *testing.T) {
	boom := errors.New("boom")
	items := []string{"a", "b", "c"}

	results := Map(context.Background(), items, 0, func(ctx context.Context, i int, s string) (string, error) {
		if s == "b" {
			return "", boom
		}
		return s + "!", nil
	})

	assert.Equal(t, "a!", results[0].Value)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, "c!", results[2].Value)
	assert.NoError(t, results[2].Err)
}

func TestMapRespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 20)

	Map(context.Background(), items, 3, func(ctx context.Context, i int, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestMapEmpty(t *testing.T) {
	results := Map(context.Background(), []int(nil), 4, func(ctx context.Context, i int, n int) (int, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})
	assert.Empty(t, results)
}

func TestMapCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := Map(ctx, []int{1, 2}, 1, func(ctx context.Context, i int, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	assert.Zero(t, calls.Load())
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
