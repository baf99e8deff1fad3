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

	// Get always returns miss
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

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// DatasetKey is a plain namespace
	if got := k.DatasetKey("training"); got != "dataset:training" {
		t.Errorf("DatasetKey unexpected: %s", got)
	}

	// PuzzleKey should include options in hash
	pk1 := k.PuzzleKey("slant", PuzzleKeyOpts{Rows: 8, Cols: 8, Seed: 1})
	pk2 := k.PuzzleKey("slant", PuzzleKeyOpts{Rows: 8, Cols: 8, Seed: 2})
	if pk1 == pk2 {
		t.Error("Different seeds should produce different keys")
	}
	pk3 := k.PuzzleKey("tents", PuzzleKeyOpts{Rows: 8, Cols: 8, Seed: 1})
	if pk1 == pk3 {
		t.Error("Different families should produce different keys")
	}

	// Same inputs produce the same key
	if pk1 != k.PuzzleKey("slant", PuzzleKeyOpts{Rows: 8, Cols: 8, Seed: 1}) {
		t.Error("PuzzleKey should be deterministic")
	}

	// SolveKey
	sk1 := k.SolveKey("hash123", SolveKeyOpts{Limit: 2, MaxStates: 1000})
	sk2 := k.SolveKey("hash123", SolveKeyOpts{Limit: 1, MaxStates: 1000})
	if sk1 == sk2 {
		t.Error("Different SolveKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	// All keys should be prefixed
	if got := scoped.DatasetKey("training"); got != "staging:dataset:training" {
		t.Errorf("ScopedKeyer DatasetKey unexpected: %s", got)
	}

	puzzleKey := scoped.PuzzleKey("slant", PuzzleKeyOpts{Rows: 8, Cols: 8})
	if len(puzzleKey) < 15 || puzzleKey[:8] != "staging:" {
		t.Errorf("ScopedKeyer PuzzleKey should be prefixed: %s", puzzleKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.DatasetKey("x"); got != "prefix:dataset:x" {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get data = %q", data)
	}

	// Expired entries are misses.
	if err := c.Set(ctx, "old", []byte("x"), -time.Hour); err != nil {
		t.Fatalf("Set expired: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
