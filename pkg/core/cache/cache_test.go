package cache

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int](Config{MaxItems: 10, TTL: time.Minute})
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Error("Get() on empty cache should miss")
	}

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get() = %v, %v, want 1, true", got, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Get() after Delete() should miss")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("Stats() = %+v, want 1 hit and 2 misses", stats)
	}
	if stats.HitRate < 33 || stats.HitRate > 34 {
		t.Errorf("HitRate = %v, want 33.3", stats.HitRate)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](Config{MaxItems: 10, TTL: time.Minute})
	defer c.Close()

	c.SetWithTTL("short", "x", 10*time.Millisecond)
	c.SetWithTTL("forever", "y", 0)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should miss")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}

	c.SetWithTTL("short", "x", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	c.cleanup()
	if c.Size() != 1 {
		t.Errorf("Size() after cleanup = %d, want 1", c.Size())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Minute})
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)
	c.Get("a")
	time.Sleep(time.Millisecond)
	c.Set("c", 3)

	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was used recently and should stay")
	}

	// overwriting an existing key does not evict
	c.Set("a", 10)
	if c.Size() != 2 {
		t.Errorf("Size() after overwrite = %d, want 2", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[int](DefaultConfig())
	defer c.Close()

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := c.GetOrSet("k", compute)
	if err != nil || v != 42 || hit {
		t.Errorf("first GetOrSet() = %v, %v, %v", v, hit, err)
	}
	v, hit, err = c.GetOrSet("k", compute)
	if err != nil || v != 42 || !hit {
		t.Errorf("second GetOrSet() = %v, %v, %v", v, hit, err)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	failure := errors.New("boom")
	if _, _, err := c.GetOrSet("bad", func() (int, error) { return 0, failure }); !errors.Is(err, failure) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestCache_ClearAndClose(t *testing.T) {
	c := New[int](Config{})
	c.Set("a", 1)
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear() = %d", c.Size())
	}

	c.Close()
	c.Close()
	c.Set("b", 2)
	if _, ok := c.Get("b"); !ok {
		t.Error("cache should stay usable after Close()")
	}
}
