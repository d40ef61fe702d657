package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/inspect"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

func testRecord(path string) *Record {
	return NewRecord(&inspect.Summary{
		Path:        path,
		Kind:        filekind.KindCSV,
		Fingerprint: "abc123",
		SizeBytes:   42,
		ModTime:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Details:     json.RawMessage(`{"rows":3}`),
	})
}

func TestNewRecord(t *testing.T) {
	rec := testRecord("orders.csv")

	if rec.ID == "" {
		t.Error("ID should be assigned")
	}
	if rec.AddedAt.IsZero() {
		t.Error("AddedAt should be set")
	}
	if rec.Kind != filekind.KindCSV {
		t.Errorf("Kind = %q, want %q", rec.Kind, filekind.KindCSV)
	}

	other := testRecord("orders.csv")
	if other.ID == rec.ID {
		t.Error("two records should get distinct IDs")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rec := testRecord("orders.csv")

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Path != rec.Path || got.Fingerprint != rec.Fingerprint || got.SizeBytes != rec.SizeBytes {
		t.Errorf("Get() = %+v, want %+v", got, rec)
	}
	if string(got.Summary) != `{"rows":3}` {
		t.Errorf("Summary = %s, want {\"rows\":3}", got.Summary)
	}
}

func TestFileStorePutWithoutID(t *testing.T) {
	store := newTestStore(t)

	err := store.Put(context.Background(), &Record{Path: "x.csv"})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("Put() error = %v, want code %s", err, apperrors.ErrCodeInvalidInput)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	if !apperrors.Is(err, apperrors.ErrCodeRecordNotFound) {
		t.Errorf("Get() error = %v, want code %s", err, apperrors.ErrCodeRecordNotFound)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	paths := []string{"a.csv", "b.csv", "c.csv"}
	for i, p := range paths {
		rec := testRecord(p)
		rec.AddedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Put(ctx, rec); err != nil {
			t.Fatalf("Put(%s) error = %v", p, err)
		}
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	wantOrder := []string{"c.csv", "b.csv", "a.csv"}
	for i, want := range wantOrder {
		if recs[i].Path != want {
			t.Errorf("record[%d] = %q, want %q", i, recs[i].Path, want)
		}
	}
}

func TestFileStoreListEmpty(t *testing.T) {
	store := newTestStore(t)

	recs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rec := testRecord("orders.csv")

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, rec.ID); !apperrors.Is(err, apperrors.ErrCodeRecordNotFound) {
		t.Errorf("Get() after delete error = %v, want code %s", err, apperrors.ErrCodeRecordNotFound)
	}

	if err := store.Delete(ctx, rec.ID); !apperrors.Is(err, apperrors.ErrCodeRecordNotFound) {
		t.Errorf("Delete() missing error = %v, want code %s", err, apperrors.ErrCodeRecordNotFound)
	}
}

func TestFileStorePutReplacesByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rec := testRecord("orders.csv")

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	rec.SizeBytes = 99
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("Put() update error = %v", err)
	}

	recs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records after update, want 1", len(recs))
	}
	if recs[0].SizeBytes != 99 {
		t.Errorf("SizeBytes = %d, want 99", recs[0].SizeBytes)
	}
}
