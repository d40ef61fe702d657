package inspect

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/datapeek/datapeek/pkg/cache"
	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/observability"
	"github.com/datapeek/datapeek/pkg/source"
)

// Runner encapsulates describe runs with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store summaries. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	summarizers map[filekind.Kind]*Summarizer
}

// NewRunner creates a runner with the given cache, keyer, and summarizers.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, summarizers ...*Summarizer) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	reg := make(map[filekind.Kind]*Summarizer, len(summarizers))
	for _, s := range summarizers {
		reg[s.Kind] = s
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		summarizers: reg,
	}
}

// Supports reports whether a summarizer is registered for kind.
func (r *Runner) Supports(kind filekind.Kind) bool {
	_, ok := r.summarizers[kind]
	return ok
}

// Describe classifies the file, runs its summarizer, and returns the
// summary envelope. Summaries are cached keyed by the file's content
// fingerprint, so an unchanged file is never scanned twice.
func (r *Runner) Describe(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	det, err := filekind.Detect(opts.Path)
	if err != nil {
		return nil, err
	}
	observability.Describe().OnDetect(ctx, opts.Path, string(det.Kind))

	s, ok := r.summarizers[det.Kind]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported,
			"no summarizer registered for %s files", det.Kind)
	}

	fp, err := source.Fingerprint(opts.Path)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SummaryKey(string(det.Kind), fp, cache.SummaryKeyOpts{
		HeadRows: opts.HeadRows,
		Sheet:    opts.Sheet,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var sum Summary
			if err := json.Unmarshal(data, &sum); err == nil {
				observability.Cache().OnCacheHit(ctx, "summary")
				r.Logger.Debug("summary cache hit", "path", opts.Path, "kind", det.Kind)
				return &Result{Summary: &sum, Duration: time.Since(start), CacheHit: true}, nil
			}
			// If deserialization fails, fall through to re-describe
		}
		observability.Cache().OnCacheMiss(ctx, "summary")
	}

	observability.Describe().OnDescribeStart(ctx, opts.Path, string(det.Kind))
	details, err := s.Summarize(ctx, opts.Path, opts)
	observability.Describe().OnDescribeComplete(ctx, opts.Path, string(det.Kind), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sum, err := buildSummary(opts.Path, det, fp, details)
	if err != nil {
		return nil, err
	}

	// Cache the result
	if data, err := json.Marshal(sum); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLSummary)
		observability.Cache().OnCacheSet(ctx, "summary", len(data))
	}

	d := time.Since(start)
	r.Logger.Info("described file",
		"path", opts.Path,
		"kind", det.Kind,
		"duration", d)

	return &Result{Summary: sum, Duration: d}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func buildSummary(path string, det filekind.Detection, fp string, details any) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to stat %s", path)
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to encode %s summary", det.Kind)
	}
	return &Summary{
		Path:        path,
		Kind:        det.Kind,
		Compressed:  det.Compressed,
		SizeBytes:   info.Size(),
		ModTime:     info.ModTime().UTC(),
		Fingerprint: fp,
		Details:     raw,
	}, nil
}
