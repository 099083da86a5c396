package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_DoCollapsesConcurrentCalls(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("/matches/1-abc", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("group call failed: %v", err)
			}
			if val != "ok" {
				t.Errorf("unexpected value %q", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_DoRunsAgainAfterCompletion(t *testing.T) {
	var g Group[int]
	boom := errors.New("boom")

	_, err, shared := g.Do("k", func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if shared {
		t.Fatalf("single caller must not be reported as shared")
	}

	val, err, _ := g.Do("k", func() (int, error) { return 7, nil })
	if err != nil || val != 7 {
		t.Fatalf("expected fresh execution, got val=%d err=%v", val, err)
	}
}
