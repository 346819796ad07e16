package cache

import (
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[uint64, string](4, Identity)

	if _, ok := c.Get(1); ok {
		t.Error("Get() on empty cache returned ok")
	}

	c.Set(1, "one")
	got, ok := c.Get(1)
	if !ok || got != "one" {
		t.Errorf("Get(1) = %q, %v, want %q, true", got, ok, "one")
	}

	c.Set(1, "uno")
	if got, _ := c.Get(1); got != "uno" {
		t.Errorf("Get(1) after overwrite = %q, want %q", got, "uno")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEvictionIsLRU(t *testing.T) {
	c := New[uint64, int](2, Identity)

	// All keys land in shard 0.
	c.Set(0*ShardCount, 0)
	c.Set(1*ShardCount, 1)
	c.Get(0 * ShardCount) // refresh key 0
	c.Set(2*ShardCount, 2)

	if _, ok := c.Get(1 * ShardCount); ok {
		t.Error("least recently used key survived eviction")
	}
	if _, ok := c.Get(0 * ShardCount); !ok {
		t.Error("recently used key was evicted")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestDefaultCapacity(t *testing.T) {
	c := New[uint64, int](0, Identity)
	for i := range uint64(DefaultCapacity + 2) {
		c.Set(i*ShardCount, int(i))
	}
	if c.Len() != DefaultCapacity {
		t.Errorf("Len() = %d, want %d", c.Len(), DefaultCapacity)
	}
}

func TestStats(t *testing.T) {
	c := New[uint64, int](4, Identity)
	c.Set(7, 7)
	c.Get(7)
	c.Get(8)

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 1 hit and 1 miss", s)
	}
	if s.HitRate() != 0.5 {
		t.Errorf("HitRate() = %v, want 0.5", s.HitRate())
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("HitRate() of empty stats should be 0")
	}
}

func TestClear(t *testing.T) {
	c := New[uint64, int](4, Identity)
	for i := range uint64(10) {
		c.Set(i, int(i))
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestConcurrent(t *testing.T) {
	c := New[uint64, int](16, Identity)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := uint64(g*1000 + i)
				c.Set(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16*ShardCount {
		t.Errorf("Len() = %d exceeds total capacity %d", c.Len(), 16*ShardCount)
	}
}
