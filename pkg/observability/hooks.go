// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about engine execution, cache operations, and solver runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnGenerateStart(ctx, family, rows, cols)
//	// ... do generation ...
//	observability.Engine().OnGenerateComplete(ctx, family, clues, fallback, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from puzzle generation and solving.
type EngineHooks interface {
	// Generation events
	OnGenerateStart(ctx context.Context, family string, rows, cols int)
	OnGenerateComplete(ctx context.Context, family string, clues int, fallback bool, duration time.Duration, err error)

	// Solver events
	OnSolveStart(ctx context.Context, family string, clues int)
	OnSolveComplete(ctx context.Context, family string, solutions, states int, duration time.Duration, err error)

	// Clue reduction events
	OnReduceStart(ctx context.Context, family string, variables int)
	OnReduceComplete(ctx context.Context, family string, hidden, kept int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from dataset store operations.
type StoreHooks interface {
	// OnSave records a puzzle write.
	OnSave(ctx context.Context, dataset string, duration time.Duration, err error)

	// OnLoad records a puzzle read.
	OnLoad(ctx context.Context, dataset string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnGenerateStart(context.Context, string, int, int) {}
func (NoopEngineHooks) OnGenerateComplete(context.Context, string, int, bool, time.Duration, error) {
}
func (NoopEngineHooks) OnSolveStart(context.Context, string, int)                           {}
func (NoopEngineHooks) OnSolveComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopEngineHooks) OnReduceStart(context.Context, string, int)                          {}
func (NoopEngineHooks) OnReduceComplete(context.Context, string, int, int, time.Duration)   {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
