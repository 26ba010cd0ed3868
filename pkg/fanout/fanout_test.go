package fanout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatches_OrderAndConcurrency(t *testing.T) {
	var running, peak int32
	results, err := Batches(context.Background(), 7, 3, 0, func(ctx context.Context, i int) (int, error) {
		cur := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return i * i, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 9, 16, 25, 36}, results)
	assert.LessOrEqual(t, int(peak), 3)
}

func TestBatches_DelayBetweenBatches(t *testing.T) {
	var mu sync.Mutex
	starts := map[int]time.Time{}

	_, err := Batches(context.Background(), 6, 3, 50*time.Millisecond, func(ctx context.Context, i int) (struct{}, error) {
		mu.Lock()
		starts[i] = time.Now()
		mu.Unlock()
		return struct{}{}, nil
	})
	require.NoError(t, err)

	// Second batch starts only after the delay
	assert.GreaterOrEqual(t, starts[3].Sub(starts[0]), 50*time.Millisecond)
}

func TestBatches_ErrorStopsLaterBatches(t *testing.T) {
	boom := errors.New("boom")
	var calls int32

	_, err := Batches(context.Background(), 9, 3, 0, func(ctx context.Context, i int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if i == 1 {
			return 0, boom
		}
		return i, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBatches_Empty(t *testing.T) {
	results, err := Batches(context.Background(), 0, 3, time.Second, func(ctx context.Context, i int) (string, error) {
		t.Fatal("fn must not be called")
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatches_ContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, err := Batches(ctx, 4, 2, time.Minute, func(ctx context.Context, i int) (int, error) {
		if i == 1 {
			cancel()
		}
		return i, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
