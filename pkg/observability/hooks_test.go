package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Describe hooks
	d := NoopDescribeHooks{}
	d.OnDetect(ctx, "data.csv", "csv")
	d.OnDescribeStart(ctx, "data.csv", "csv")
	d.OnDescribeComplete(ctx, "data.csv", "csv", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "summary")
	c.OnCacheMiss(ctx, "summary")
	c.OnCacheSet(ctx, "summary", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Describe().(NoopDescribeHooks); !ok {
		t.Error("Describe() should return NoopDescribeHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customDescribe := &testDescribeHooks{}
	SetDescribeHooks(customDescribe)
	if Describe() != customDescribe {
		t.Error("SetDescribeHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Describe().(NoopDescribeHooks); !ok {
		t.Error("Reset() should restore NoopDescribeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDescribeHooks{}
	SetDescribeHooks(custom)

	// Setting nil should be ignored
	SetDescribeHooks(nil)

	if Describe() != custom {
		t.Error("SetDescribeHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDescribeHooks struct{ NoopDescribeHooks }
type testCacheHooks struct{ NoopCacheHooks }
