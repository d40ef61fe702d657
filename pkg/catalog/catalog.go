// Package catalog keeps a record of described datasets.
//
// A record pins the file's identity (path, kind, content fingerprint)
// together with the summary payload that described it, so `datapeek
// catalog list` answers "what data do I have and what shape is it"
// without rescanning anything.
//
// Two backends implement Store:
//   - file: JSON records in a local directory, for single-machine use
//   - mongo: a MongoDB collection, for catalogs shared across a team
//
// # Usage
//
// Create a store and add a record built from a describe run:
//
//	store, err := catalog.NewFileStore("")  // ~/.local/share/datapeek/catalog
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec := catalog.NewRecord(result.Summary)
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/inspect"
)

// Record is one catalog entry.
type Record struct {
	ID          string          `json:"id" bson:"id"`
	Path        string          `json:"path" bson:"path"`
	Kind        filekind.Kind   `json:"kind" bson:"kind"`
	Fingerprint string          `json:"fingerprint" bson:"fingerprint"`
	SizeBytes   int64           `json:"size_bytes" bson:"size_bytes"`
	ModTime     time.Time       `json:"mod_time" bson:"mod_time"`
	Summary     json.RawMessage `json:"summary,omitempty" bson:"summary,omitempty"`
	AddedAt     time.Time       `json:"added_at" bson:"added_at"`
}

// NewRecord builds a catalog record from a summary envelope.
// The record gets a fresh uuid and the current time.
func NewRecord(sum *inspect.Summary) *Record {
	return &Record{
		ID:          uuid.NewString(),
		Path:        sum.Path,
		Kind:        sum.Kind,
		Fingerprint: sum.Fingerprint,
		SizeBytes:   sum.SizeBytes,
		ModTime:     sum.ModTime,
		Summary:     sum.Details,
		AddedAt:     time.Now().UTC(),
	}
}

// Store is the interface for catalog storage backends.
type Store interface {
	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
