package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Errorf("expected miss on empty cache")
	}
	if err := cache.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := cache.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("expected hit with v, got %q %v", v, ok)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	_ = cache.Set(ctx, "k", "v", time.Minute)

	now = now.Add(59 * time.Second)
	if _, ok := cache.Get(ctx, "k"); !ok {
		t.Errorf("entry expired too early")
	}

	now = now.Add(2 * time.Second)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Errorf("entry should have expired")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry should be evicted on read")
	}
}
