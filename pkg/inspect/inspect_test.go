package inspect

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/datapeek/datapeek/pkg/cache"
	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/observability"
)

type countingSummarizer struct {
	calls   int
	gotOpts Options
}

func (s *countingSummarizer) summarize(_ context.Context, _ string, opts Options) (any, error) {
	s.calls++
	s.gotOpts = opts
	return map[string]any{"lines": 2}, nil
}

func newTestRunner(t *testing.T) (*Runner, *countingSummarizer) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	s := &countingSummarizer{}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(c, nil, logger, &Summarizer{Kind: filekind.KindText, Summarize: s.summarize})
	return r, s
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestDescribe(t *testing.T) {
	r, s := newTestRunner(t)
	path := writeFixture(t, "data.txt", "hello\nworld\n")
	ctx := context.Background()

	res, err := r.Describe(ctx, Options{Path: path})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if res.CacheHit {
		t.Error("first run should not hit the cache")
	}

	sum := res.Summary
	if sum.Path != path {
		t.Errorf("Path = %q, want %q", sum.Path, path)
	}
	if sum.Kind != filekind.KindText {
		t.Errorf("Kind = %q, want %q", sum.Kind, filekind.KindText)
	}
	if sum.SizeBytes != 12 {
		t.Errorf("SizeBytes = %d, want 12", sum.SizeBytes)
	}
	if sum.Fingerprint == "" {
		t.Error("Fingerprint should not be empty")
	}
	if !strings.Contains(string(sum.Details), `"lines":2`) {
		t.Errorf("Details = %s, want lines payload", sum.Details)
	}
	if s.gotOpts.HeadRows != DefaultHeadRows {
		t.Errorf("summarizer saw HeadRows = %d, want default %d", s.gotOpts.HeadRows, DefaultHeadRows)
	}

	// Second run on the unchanged file comes from the cache.
	res2, err := r.Describe(ctx, Options{Path: path})
	if err != nil {
		t.Fatalf("Describe() second run error = %v", err)
	}
	if !res2.CacheHit {
		t.Error("second run should hit the cache")
	}
	if s.calls != 1 {
		t.Errorf("summarizer ran %d times, want 1", s.calls)
	}
	if res2.Summary.Fingerprint != sum.Fingerprint {
		t.Error("cached summary should carry the same fingerprint")
	}
}

func TestDescribeRefreshBypassesCache(t *testing.T) {
	r, s := newTestRunner(t)
	path := writeFixture(t, "data.txt", "hello\n")
	ctx := context.Background()

	if _, err := r.Describe(ctx, Options{Path: path}); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	res, err := r.Describe(ctx, Options{Path: path, Refresh: true})
	if err != nil {
		t.Fatalf("Describe() with refresh error = %v", err)
	}
	if res.CacheHit {
		t.Error("refresh run should not report a cache hit")
	}
	if s.calls != 2 {
		t.Errorf("summarizer ran %d times, want 2", s.calls)
	}
}

func TestDescribeOptionsChangeCacheKey(t *testing.T) {
	r, s := newTestRunner(t)
	path := writeFixture(t, "data.txt", "hello\n")
	ctx := context.Background()

	if _, err := r.Describe(ctx, Options{Path: path, HeadRows: 5}); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if _, err := r.Describe(ctx, Options{Path: path, HeadRows: 20}); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if s.calls != 2 {
		t.Errorf("summarizer ran %d times, want 2 (different options)", s.calls)
	}
}

func TestDescribeUnsupportedKind(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(nil, nil, logger)
	path := writeFixture(t, "data.txt", "hello\n")

	_, err := r.Describe(context.Background(), Options{Path: path})
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("Describe() error = %v, want code %s", err, apperrors.ErrCodeUnsupported)
	}
}

func TestDescribeMissingFile(t *testing.T) {
	r, _ := newTestRunner(t)

	_, err := r.Describe(context.Background(), Options{Path: filepath.Join(t.TempDir(), "nope.txt")})
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Describe() error = %v, want code %s", err, apperrors.ErrCodeFileNotFound)
	}
}

func TestDescribeNilCacheNeverHits(t *testing.T) {
	s := &countingSummarizer{}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(nil, nil, logger, &Summarizer{Kind: filekind.KindText, Summarize: s.summarize})
	path := writeFixture(t, "data.txt", "hello\n")
	ctx := context.Background()

	for range 2 {
		if _, err := r.Describe(ctx, Options{Path: path}); err != nil {
			t.Fatalf("Describe() error = %v", err)
		}
	}
	if s.calls != 2 {
		t.Errorf("summarizer ran %d times, want 2 with caching disabled", s.calls)
	}
}

func TestSupports(t *testing.T) {
	r, _ := newTestRunner(t)
	if !r.Supports(filekind.KindText) {
		t.Error("Supports(text) = false, want true")
	}
	if r.Supports(filekind.KindParquet) {
		t.Error("Supports(parquet) = true, want false")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		want    int
	}{
		{"defaults applied", Options{Path: "a.txt"}, false, DefaultHeadRows},
		{"explicit rows kept", Options{Path: "a.txt", HeadRows: 50}, false, 50},
		{"missing path", Options{}, true, 0},
		{"negative rows", Options{Path: "a.txt", HeadRows: -1}, true, 0},
		{"too many rows", Options{Path: "a.txt", HeadRows: MaxHeadRows + 1}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.opts.HeadRows != tt.want {
				t.Errorf("HeadRows = %d, want %d", tt.opts.HeadRows, tt.want)
			}
		})
	}
}

type hookCounts struct {
	observability.NoopDescribeHooks
	observability.NoopCacheHooks
	detects, starts, completes int
	hits, misses, sets         int
}

func (h *hookCounts) OnDetect(context.Context, string, string)        { h.detects++ }
func (h *hookCounts) OnDescribeStart(context.Context, string, string) { h.starts++ }
func (h *hookCounts) OnDescribeComplete(context.Context, string, string, time.Duration, error) {
	h.completes++
}
func (h *hookCounts) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *hookCounts) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *hookCounts) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDescribeEmitsHooks(t *testing.T) {
	counts := &hookCounts{}
	observability.SetDescribeHooks(counts)
	observability.SetCacheHooks(counts)
	t.Cleanup(observability.Reset)

	r, _ := newTestRunner(t)
	path := writeFixture(t, "data.txt", "hello\n")
	ctx := context.Background()

	if _, err := r.Describe(ctx, Options{Path: path}); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if counts.detects != 1 || counts.starts != 1 || counts.completes != 1 {
		t.Errorf("describe hooks = %d/%d/%d, want 1/1/1", counts.detects, counts.starts, counts.completes)
	}
	if counts.misses != 1 || counts.sets != 1 || counts.hits != 0 {
		t.Errorf("cache hooks after miss = %d miss / %d set / %d hit, want 1/1/0", counts.misses, counts.sets, counts.hits)
	}

	if _, err := r.Describe(ctx, Options{Path: path}); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if counts.hits != 1 {
		t.Errorf("cache hits = %d, want 1", counts.hits)
	}
}
