package snowflake

import (
	"sync"
	"testing"
)

// 基础测试：能不能生成 ID
func TestGenUserID(t *testing.T) {
	id := GenUserID()
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 唯一性测试：单线程生成
func TestGenUserID_Unique(t *testing.T) {
	const n = 10000
	ids := make(map[int64]struct{}, n)

	for i := 0; i < n; i++ {
		id := GenUserID()
		if _, exists := ids[id]; exists {
			t.Fatalf("duplicate id found: %d", id)
		}
		ids[id] = struct{}{}
	}
}

// 并发测试：多 goroutine 生成
func TestGenUserID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 5000
		total      = goroutines * perRoutine
	)

	var mu sync.Mutex
	ids := make(map[int64]struct{}, total)
	var wg sync.WaitGroup

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perRoutine)
			for i := 0; i < perRoutine; i++ {
				local = append(local, GenID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if _, exists := ids[id]; exists {
					t.Errorf("duplicate id found: %d", id)
					return
				}
				ids[id] = struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(ids) != total {
		t.Fatalf("expected %d unique ids, got %d", total, len(ids))
	}
}
