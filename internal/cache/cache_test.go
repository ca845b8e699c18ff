package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New()
	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	if !ok || got.(string) != "value" {
		t.Errorf("Get returned %v, %v", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("missing key reported present")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New()
	c.Set("key", "value", 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("key"); ok {
		t.Error("expired entry still served")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not evicted on read, len=%d", c.Len())
	}
}

func TestCache_Clear(t *testing.T) {
	c := New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear left %d entries", c.Len())
	}

	// Clear on empty cache is fine
	c.Clear()
}

func TestCache_Overwrite(t *testing.T) {
	c := New()
	c.Set("key", "old", time.Minute)
	c.Set("key", "new", time.Minute)

	got, _ := c.Get("key")
	if got.(string) != "new" {
		t.Errorf("overwrite failed, got %v", got)
	}
}
