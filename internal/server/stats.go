package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is the counter snapshot served at /api/stats.
type Stats struct {
	DescribesStarted   int64            `json:"describes_started"`
	DescribesCompleted int64            `json:"describes_completed"`
	DescribeErrors     int64            `json:"describe_errors"`
	CacheHits          int64            `json:"cache_hits"`
	CacheMisses        int64            `json:"cache_misses"`
	CacheSets          int64            `json:"cache_sets"`
	Kinds              map[string]int64 `json:"kinds,omitempty"`
}

// statsHooks counts describe and cache events. It implements both
// observability hook interfaces.
type statsHooks struct {
	started   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64

	mu    sync.Mutex
	kinds map[string]int64
}

func newStatsHooks() *statsHooks {
	return &statsHooks{kinds: make(map[string]int64)}
}

func (h *statsHooks) OnDetect(_ context.Context, _ string, kind string) {
	h.mu.Lock()
	h.kinds[kind]++
	h.mu.Unlock()
}

func (h *statsHooks) OnDescribeStart(_ context.Context, _, _ string) {
	h.started.Add(1)
}

func (h *statsHooks) OnDescribeComplete(_ context.Context, _, _ string, _ time.Duration, err error) {
	if err != nil {
		h.failed.Add(1)
		return
	}
	h.completed.Add(1)
}

func (h *statsHooks) OnCacheHit(_ context.Context, _ string)        { h.hits.Add(1) }
func (h *statsHooks) OnCacheMiss(_ context.Context, _ string)       { h.misses.Add(1) }
func (h *statsHooks) OnCacheSet(_ context.Context, _ string, _ int) { h.sets.Add(1) }

func (h *statsHooks) snapshot() Stats {
	h.mu.Lock()
	kinds := make(map[string]int64, len(h.kinds))
	for k, v := range h.kinds {
		kinds[k] = v
	}
	h.mu.Unlock()

	return Stats{
		DescribesStarted:   h.started.Load(),
		DescribesCompleted: h.completed.Load(),
		DescribeErrors:     h.failed.Load(),
		CacheHits:          h.hits.Load(),
		CacheMisses:        h.misses.Load(),
		CacheSets:          h.sets.Load(),
		Kinds:              kinds,
	}
}
