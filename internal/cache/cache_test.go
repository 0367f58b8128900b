package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestGetOrComputeCachesResult(t *testing.T) {
	c := New(4)
	calls := 0
	compute := func() interface{} {
		calls++
		return "value"
	}
	v1 := c.GetOrCompute("k", compute)
	v2 := c.GetOrCompute("k", compute)
	if v1 != "value" || v2 != "value" {
		t.Fatalf("unexpected values %v %v", v1, v2)
	}
	if calls != 1 {
		t.Fatalf("compute called %d times, want 1", calls)
	}
}

func TestCacheNeverEvicts(t *testing.T) {
	c := New(8)
	for i := 0; i < 500; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	if c.Len() != 500 {
		t.Fatalf("Len() = %d, want 500 after monotonic inserts", c.Len())
	}
	if _, ok := c.Get("0"); !ok {
		t.Fatalf("earliest entry should still be present, no eviction")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(16)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 10)
			c.Set(key, i)
			c.Get(key)
		}(i)
	}
	wg.Wait()
	if c.Len() > 10 {
		t.Fatalf("Len() = %d, want at most 10 distinct keys", c.Len())
	}
}
