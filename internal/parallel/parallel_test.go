package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 1000, 1023} {
		for _, workers := range []int{0, 1, 3, 8} {
			counts := make([]int32, n)
			err := For(context.Background(), n, workers, 4, func(_ context.Context, start, end int) error {
				for i := start; i < end; i++ {
					atomic.AddInt32(&counts[i], 1)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("n=%d workers=%d: %v", n, workers, err)
			}
			for i, c := range counts {
				if c != 1 {
					t.Fatalf("n=%d workers=%d: index %d visited %d times", n, workers, i, c)
				}
			}
		}
	}
}

func TestForReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := For(context.Background(), 100, 4, 1, func(_ context.Context, start, end int) error {
		if start <= 50 && 50 < end {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestForHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := For(ctx, 100, 4, 1, func(context.Context, int, int) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no chunk to run, got %d", calls)
	}
}

func TestWorkers(t *testing.T) {
	if Workers(3) != 3 {
		t.Error("explicit worker count should be kept")
	}
	if Workers(0) < 1 {
		t.Error("default worker count should be positive")
	}
}
