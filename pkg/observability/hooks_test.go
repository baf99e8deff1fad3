package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Engine hooks
	e := NoopEngineHooks{}
	e.OnGenerateStart(ctx, "slant", 8, 8)
	e.OnGenerateComplete(ctx, "slant", 24, false, time.Second, nil)
	e.OnSolveStart(ctx, "slant", 24)
	e.OnSolveComplete(ctx, "slant", 1, 4821, time.Second, nil)
	e.OnReduceStart(ctx, "slant", 64)
	e.OnReduceComplete(ctx, "slant", 40, 24, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "puzzle")
	c.OnCacheMiss(ctx, "puzzle")
	c.OnCacheSet(ctx, "puzzle", 1024)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnSave(ctx, "training", time.Second, nil)
	s.OnLoad(ctx, "training", time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	// Set custom hooks
	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)

	// Setting nil should be ignored
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testEngineHooks struct{ NoopEngineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testStoreHooks struct{ NoopStoreHooks }
