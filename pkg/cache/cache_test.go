package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before set
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss before Set")
	}

	// Set then hit
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit || string(data) != "value" {
		t.Errorf("Get = %q (hit=%v), want %q", data, hit, "value")
	}

	// Expired entries become misses
	if err := c.Set(ctx, "short", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestScopedCache(t *testing.T) {
	ctx := context.Background()
	base, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	a := NewScoped(base, "a:")
	b := NewScoped(base, "b:")

	if err := a.Set(ctx, "key", []byte("from-a"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, hit, _ := b.Get(ctx, "key"); hit {
		t.Error("scoped namespaces should not share keys")
	}
	data, hit, _ := a.Get(ctx, "key")
	if !hit || string(data) != "from-a" {
		t.Errorf("Get = %q (hit=%v), want %q", data, hit, "from-a")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestLayoutKey(t *testing.T) {
	type req struct {
		Radii []float64 `json:"radii"`
	}

	k1 := LayoutKey("progressive", req{Radii: []float64{1, 2, 3}})
	k2 := LayoutKey("progressive", req{Radii: []float64{1, 2, 3}})
	if k1 != k2 {
		t.Error("identical requests should produce identical keys")
	}
	if k3 := LayoutKey("progressive", req{Radii: []float64{1, 2, 4}}); k1 == k3 {
		t.Error("different requests should produce different keys")
	}
	if k4 := LayoutKey("relax", req{Radii: []float64{1, 2, 3}}); k1 == k4 {
		t.Error("different engines should produce different keys")
	}
}
