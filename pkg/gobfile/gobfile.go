// Package gobfile saves and loads inspection snapshots with
// encoding/gob.
//
// gob is Go's native object serialization: binary, self-describing,
// and Go-specific, the way pickle is Python-specific. A snapshot
// written here is only readable by a program that knows the payload
// types, which is the point: it is a working-state format, not an
// interchange format. Decoding executes no code, but decoded values
// flow into the rest of the program, so do not load snapshots from
// sources you do not trust.
package gobfile

import (
	"encoding/gob"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// Snapshot is a saved inspection result.
type Snapshot struct {
	ID        string    // Unique snapshot identifier
	CreatedAt time.Time // When the snapshot was taken
	Path      string    // Source file the snapshot describes
	Kind      string    // Detected format of the source file
	Payload   any       // Format-specific summary; concrete type must be registered
}

// Register makes a concrete payload type known to the codec. Callers
// must register every type they store in Snapshot.Payload before
// saving or loading.
func Register(v any) {
	gob.Register(v)
}

// Save writes the snapshot to path, assigning an ID and creation time
// if the caller left them empty.
func Save(path string, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to encode snapshot")
	}
	return f.Close()
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotNotFound, err, "no snapshot at %s", path)
		}
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to decode snapshot %s", path)
	}
	return &snap, nil
}
