package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// FileStore keeps catalog records as JSON files in a local directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based catalog store.
// If baseDir is empty, defaults to ~/.local/share/datapeek/catalog/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to locate home directory")
		}
		baseDir = filepath.Join(home, ".local", "share", "datapeek", "catalog")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to create catalog directory")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "record has no ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to encode record %s", rec.ID)
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to write record %s", rec.ID)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeRecordNotFound, "no catalog record %s", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to read record %s", id)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to parse record %s", id)
	}
	return &rec, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to read catalog directory")
	}

	var recs []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].AddedAt.After(recs[j].AddedAt)
	})
	return recs, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.New(apperrors.ErrCodeRecordNotFound, "no catalog record %s", id)
		}
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "failed to remove record %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for catalog records.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
