// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about file inspection and cache
// operations.
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
//   - Allows different backends without touching the inspection code
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDescribeHooks(&myDescribeHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Describe().OnDescribeStart(ctx, path, kind)
//	// ... summarize the file ...
//	observability.Describe().OnDescribeComplete(ctx, path, kind, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Describe Hooks
// =============================================================================

// DescribeHooks receives events from file inspection.
type DescribeHooks interface {
	// Detection events
	OnDetect(ctx context.Context, path, kind string)

	// Summarize events
	OnDescribeStart(ctx context.Context, path, kind string)
	OnDescribeComplete(ctx context.Context, path, kind string, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopDescribeHooks is a no-op implementation of DescribeHooks.
type NoopDescribeHooks struct{}

func (NoopDescribeHooks) OnDetect(context.Context, string, string)        {}
func (NoopDescribeHooks) OnDescribeStart(context.Context, string, string) {}
func (NoopDescribeHooks) OnDescribeComplete(context.Context, string, string, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	describeHooks DescribeHooks = NoopDescribeHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetDescribeHooks registers custom describe hooks.
// This should be called once at application startup before any inspections.
func SetDescribeHooks(h DescribeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		describeHooks = h
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

// Describe returns the registered describe hooks.
func Describe() DescribeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return describeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	describeHooks = NoopDescribeHooks{}
	cacheHooks = NoopCacheHooks{}
}
