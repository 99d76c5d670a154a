package cache

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryCacheHitMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	// Miss
	_, ok := c.Get(ctx, "scopeIds:supervisor:u1")
	if ok {
		t.Fatal("expected cache miss")
	}

	// Set + Hit
	c.Set(ctx, "scopeIds:supervisor:u1", []byte(`["u1","u2"]`), time.Minute)
	got, ok := c.Get(ctx, "scopeIds:supervisor:u1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, []byte(`["u1","u2"]`)) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get(ctx, "k")
	if ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithMaxSize(3))

	for i := 0; i < 4; i++ {
		c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute)
	}

	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	if n > 3 {
		t.Fatalf("expected at most 3 entries after eviction, got %d", n)
	}
}
