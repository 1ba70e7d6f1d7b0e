package testutil

import (
	"sync"
	"testing"
)

func TestUniqueID_ConcurrentCallsDistinct(t *testing.T) {
	t.Parallel()

	const goroutines = 30
	const perGoroutine = 10

	ids := make(chan string, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- UniqueID("txn")
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, goroutines*perGoroutine)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d distinct IDs, got %d", goroutines*perGoroutine, len(seen))
	}
}
