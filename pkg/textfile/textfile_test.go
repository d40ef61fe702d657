package textfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestReadLine(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "lines.txt", "first\nsecond\nthird\n")

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	want := []string{"first", "second", "third"}
	for _, w := range want {
		line, err := r.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if line != w {
			t.Errorf("ReadLine() = %q, want %q", line, w)
		}
	}

	// Past the end: empty line and io.EOF, again and again.
	for i := 0; i < 2; i++ {
		line, err := r.ReadLine()
		if err != io.EOF {
			t.Errorf("ReadLine() past end error = %v, want io.EOF", err)
		}
		if line != "" {
			t.Errorf("ReadLine() past end = %q, want empty", line)
		}
	}
}

func TestReadLineAfterClose(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "lines.txt", "only\n")

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err = r.ReadLine()
	if !apperrors.Is(err, apperrors.ErrCodeClosedHandle) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeClosedHandle)
	}
	if !errors.Is(err, os.ErrClosed) {
		t.Error("errors.Is(err, os.ErrClosed) = false, want true")
	}

	// Second close is a no-op.
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestReadGzipFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lines.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("compressed\ncontents\n")); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	gz.Close()
	f.Close()

	got, err := Head(path, 10)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	want := []string{"compressed", "contents"}
	if len(got) != len(want) {
		t.Fatalf("Head() returned %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHead(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"first two", "a\nb\nc\n", 2, []string{"a", "b"}},
		{"fewer lines than n", "a\nb\n", 10, []string{"a", "b"}},
		{"no trailing newline", "a\nb", 10, []string{"a", "b"}},
		{"empty file", "", 5, nil},
		{"zero n", "a\nb\n", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, dir, "head.txt", tt.content)
			got, err := Head(path, tt.n)
			if err != nil {
				t.Fatalf("Head() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Head() returned %d lines, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTail(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"last two", "a\nb\nc\nd\n", 2, []string{"c", "d"}},
		{"fewer lines than n", "a\nb\n", 10, []string{"a", "b"}},
		{"exactly n", "a\nb\nc\n", 3, []string{"a", "b", "c"}},
		{"empty file", "", 5, nil},
		{"zero n", "a\nb\n", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, dir, "tail.txt", tt.content)
			got, err := Tail(path, tt.n)
			if err != nil {
				t.Fatalf("Tail() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Tail() returned %d lines, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCount(t *testing.T) {
	content := "one two three\nfour five\n\nsix\n"
	path := writeFixture(t, t.TempDir(), "count.txt", content)

	got, err := Count(path)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if got.Lines != 4 {
		t.Errorf("Lines = %d, want 4", got.Lines)
	}
	if got.Words != 6 {
		t.Errorf("Words = %d, want 6", got.Words)
	}
	if got.Bytes != int64(len(content)) {
		t.Errorf("Bytes = %d, want %d", got.Bytes, len(content))
	}
}

func TestWriterBuffersUntilClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := w.WriteLine("hello"); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}
	if err := w.WriteLine("world"); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}

	// Small writes sit in the buffer until Close flushes them.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size before Close = %d, want 0", info.Size())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hello\nworld\n" {
		t.Errorf("contents = %q, want %q", got, "hello\nworld\n")
	}
}

func TestWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	err = w.WriteLine("too late")
	if !apperrors.Is(err, apperrors.ErrCodeClosedHandle) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeClosedHandle)
	}
	if !errors.Is(err, os.ErrClosed) {
		t.Error("errors.Is(err, os.ErrClosed) = false, want true")
	}

	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestAppend(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "log.txt", "existing\n")

	w, err := Append(path)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := w.WriteLine("appended"); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "existing\nappended\n" {
		t.Errorf("contents = %q, want %q", got, "existing\nappended\n")
	}
}

func TestFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer w.Close()

	if err := w.WriteLine("flushed"); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "flushed\n" {
		t.Errorf("contents after Flush = %q, want %q", got, "flushed\n")
	}
}
