package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mhartmann/schemap/pkg/layout"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if string(data) != "value" {
		t.Errorf("Get() = %q, want %q", data, "value")
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() hit, want miss")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("expired entry should miss")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("deleted entry should miss")
	}
	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() on missing key error: %v", err)
	}
}

func TestLayoutKey_Deterministic(t *testing.T) {
	opts := layout.DefaultOptions()

	if LayoutKey("abc", opts) != LayoutKey("abc", opts) {
		t.Error("identical inputs should produce identical keys")
	}
	if LayoutKey("abc", opts) == LayoutKey("def", opts) {
		t.Error("different schema hashes should produce different keys")
	}

	changed := opts
	changed.Algorithm = layout.AlgorithmGrid
	if LayoutKey("abc", opts) == LayoutKey("abc", changed) {
		t.Error("different options should produce different keys")
	}
}

func TestNull(t *testing.T) {
	c := NewNull()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Null cache should always miss")
	}
}
