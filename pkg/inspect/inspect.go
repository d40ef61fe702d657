// Package inspect drives file description for datapeek.
//
// The package ties together kind detection, per-format summarizers, and
// the summary cache so the CLI and the preview server describe files
// identically.
//
// # Architecture
//
// Describing a file runs three steps:
//
//  1. Detect: classify the file by extension and magic bytes
//  2. Summarize: run the registered summarizer for that kind
//  3. Cache: store the marshaled summary keyed by content fingerprint
//
// A Summary is an envelope: identification metadata plus an opaque
// per-format payload. The runner never looks inside the payload, so
// format packages stay independent of each other.
//
// # Usage
//
// Create a Runner with the summarizers the caller supports:
//
//	runner := inspect.NewRunner(cache, nil, logger, summarizers...)
//	result, err := runner.Describe(ctx, inspect.Options{Path: "orders.csv"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Summary.Details))
package inspect

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
)

const (
	// DefaultHeadRows is how many leading rows or records a summarizer
	// includes in its payload.
	DefaultHeadRows = 10

	// MaxHeadRows bounds head requests coming in over the API.
	MaxHeadRows = 1000
)

// Options configures a describe run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Path     string `json:"path"`
	HeadRows int    `json:"head_rows,omitempty"`
	Sheet    string `json:"sheet,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Path == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "path is required")
	}
	if o.HeadRows == 0 {
		o.HeadRows = DefaultHeadRows
	}
	if o.HeadRows < 0 || o.HeadRows > MaxHeadRows {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"head_rows must be between 1 and %d", MaxHeadRows)
	}
	return nil
}

// Summarizer produces the per-format payload for one file kind.
//
// Format packages know nothing about this type; the CLI and server
// build the slice of summarizers they support and hand it to
// [NewRunner].
type Summarizer struct {
	Kind      filekind.Kind
	Summarize func(ctx context.Context, path string, opts Options) (any, error)
}

// Summary is the envelope a describe run produces.
type Summary struct {
	Path        string          `json:"path"`
	Kind        filekind.Kind   `json:"kind"`
	Compressed  bool            `json:"compressed,omitempty"`
	SizeBytes   int64           `json:"size_bytes"`
	ModTime     time.Time       `json:"mod_time"`
	Fingerprint string          `json:"fingerprint"`
	Details     json.RawMessage `json:"details,omitempty"`
}

// Result contains the outputs of a describe run.
type Result struct {
	// Summary is the envelope, from the summarizer or the cache.
	Summary *Summary

	// Duration is the wall time of the run.
	Duration time.Duration

	// CacheHit reports whether the summary came from the cache.
	CacheHit bool
}
