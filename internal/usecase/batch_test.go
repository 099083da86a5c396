package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
)

func TestExpandInGroups_BoundsConcurrencyAndKeepsOrder(t *testing.T) {
	t.Parallel()

	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	var inFlight, peak atomic.Int32

	got, err := expandInGroups(context.Background(), logging.NewNop(), items, 5, func(_ context.Context, item int) (int, error) {
		current := inFlight.Add(1)
		for {
			seen := peak.Load()
			if current <= seen || peak.CompareAndSwap(seen, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)

		if item == 3 {
			return 0, errors.New("boom")
		}
		return item * 10, nil
	})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if peak.Load() > 5 {
		t.Fatalf("peak concurrency %d exceeds group size", peak.Load())
	}
	if len(got) != 11 {
		t.Fatalf("expected 11 results, got %d", len(got))
	}
	if got[2] != 20 || got[3] != 40 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestExpandInGroups_GroupsDoNotOverlap(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(event string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
	}

	items := []string{"a1", "a2", "b1", "b2"}
	_, err := expandInGroups(context.Background(), logging.NewNop(), items, 2, func(_ context.Context, item string) (string, error) {
		record("start:" + item[:1])
		time.Sleep(5 * time.Millisecond)
		record("end:" + item[:1])
		return item, nil
	})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}

	lastEndOfA, firstStartOfB := -1, len(events)
	for idx, event := range events {
		if event == "end:a" {
			lastEndOfA = idx
		}
		if event == "start:b" && idx < firstStartOfB {
			firstStartOfB = idx
		}
	}
	if lastEndOfA > firstStartOfB {
		t.Fatalf("second group started before first settled: %v", events)
	}
}

func TestExpandInGroups_CancelledContextStopsScheduling(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	got, err := expandInGroups(ctx, logging.NewNop(), []int{1, 2, 3, 4}, 2, func(_ context.Context, item int) (int, error) {
		calls.Add(1)
		cancel()
		return item, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected only first group to run, got %d calls", calls.Load())
	}
	if len(got) != 2 {
		t.Fatalf("expected first group results, got %v", got)
	}
}
