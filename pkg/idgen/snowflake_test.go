package idgen

import (
	"sync"
	"testing"
)

type fixedClock struct {
	ms int64
}

func (c *fixedClock) Now() int64 { return c.ms }

func TestSnowflake_MonotonicWithinMillisecond(t *testing.T) {
	clock := &fixedClock{ms: Epoch + 5000}
	sf, err := New(7, clock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev, err := sf.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	for i := 0; i < 100; i++ {
		id, err := sf.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if id <= prev {
			t.Fatalf("expected strictly increasing IDs, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestSnowflake_EncodesNodeID(t *testing.T) {
	clock := &fixedClock{ms: Epoch + 1}
	sf, _ := New(42, clock)
	id, _ := sf.Next()

	if got := (id >> nodeShift) & int64(maxNodeID); got != 42 {
		t.Fatalf("expected node id 42 in ID, got %d", got)
	}
}

func TestSnowflake_RejectsOutOfRangeNodeID(t *testing.T) {
	if _, err := New(int64(maxNodeID)+1, nil); err != ErrNodeIDTooLarge {
		t.Fatalf("expected ErrNodeIDTooLarge, got %v", err)
	}
	if _, err := New(-1, nil); err != ErrNodeIDTooLarge {
		t.Fatalf("expected ErrNodeIDTooLarge for negative node, got %v", err)
	}
}

func TestSnowflake_ClockRegression(t *testing.T) {
	clock := &fixedClock{ms: Epoch + 2000}
	sf, _ := New(1, clock)
	if _, err := sf.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	clock.ms = Epoch + 1500
	if _, err := sf.Next(); err != ErrClockMovedBack {
		t.Fatalf("expected ErrClockMovedBack, got %v", err)
	}
}

func TestSnowflake_UniqueUnderConcurrency(t *testing.T) {
	sf, _ := New(1, &SystemClock{})

	const workers, perWorker = 20, 500
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := sf.Next()
				if err != nil {
					t.Errorf("Next: %v", err)
					return
				}
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID %d", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d IDs, got %d", workers*perWorker, len(seen))
	}
}
