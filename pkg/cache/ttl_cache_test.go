package cache

import (
	"strings"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New[string, int](time.Minute, time.Hour)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on a missing key reported a hit")
	}
	if n := c.Len(); n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}
}

func TestGetExpired(t *testing.T) {
	// long cleanup interval: expiry must come from Get itself,
	// not from the background eviction
	c := New[string, string](10*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("Get returned an expired entry")
	}
}

func TestSetRefreshesExpiry(t *testing.T) {
	c := New[string, string](50*time.Millisecond, time.Hour)
	defer c.Close()

	c.Set("k", "old")
	time.Sleep(30 * time.Millisecond)
	c.Set("k", "new")
	time.Sleep(30 * time.Millisecond)

	// 60ms after the first Set, but only 30ms after the second
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("re-Set entry expired on the original deadline")
	}
	if v != "new" {
		t.Fatalf("Get = %q, want %q", v, "new")
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](time.Minute, time.Hour)
	defer c.Close()

	c.Set("k", 7)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted key still readable")
	}
	// deleting again must be a no-op
	c.Delete("k")
}

func TestDeleteFunc(t *testing.T) {
	c := New[string, int](time.Minute, time.Hour)
	defer c.Close()

	c.Set("ws-1:user-1", 1)
	c.Set("ws-1:user-2", 2)
	c.Set("ws-2:user-1", 3)

	c.DeleteFunc(func(key string) bool {
		return strings.HasPrefix(key, "ws-1:")
	})

	if _, ok := c.Get("ws-1:user-1"); ok {
		t.Fatal("matching key survived DeleteFunc")
	}
	if _, ok := c.Get("ws-1:user-2"); ok {
		t.Fatal("matching key survived DeleteFunc")
	}
	if _, ok := c.Get("ws-2:user-1"); !ok {
		t.Fatal("non-matching key was deleted")
	}
}

func TestClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Hour)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if n := c.Len(); n != 0 {
		t.Fatalf("Len after Clear = %d, want 0", n)
	}
}

func TestBackgroundEviction(t *testing.T) {
	c := New[string, int](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("k", 1)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c.Len() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expired entry was never evicted by the cleanup goroutine")
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute, time.Hour)
	defer c.Close()

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				c.Set(i, g)
				c.Get(i)
				if i%10 == 0 {
					c.Delete(i)
				}
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
