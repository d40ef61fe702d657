// Package source opens local data files for reading.
//
// Files are plain byte streams on disk; this package turns them into
// io.ReadCloser values the format packages can consume. Gzip-compressed
// files (detected by their magic bytes, not their extension) are
// decompressed transparently, so a reader handed out here always yields
// the uncompressed contents.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// gzipMagic is the two-byte signature at the start of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Open opens the file at path for reading. If the file is
// gzip-compressed, the returned reader yields the decompressed contents.
// Close releases the decompressor and the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream in %s: %w", path, err)
		}
		return &layeredReader{r: gz, closers: []io.Closer{gz, f}}, nil
	}

	return &layeredReader{r: br, closers: []io.Closer{f}}, nil
}

// layeredReader reads from r and closes every layer in order on Close.
type layeredReader struct {
	r       io.Reader
	closers []io.Closer
}

func (l *layeredReader) Read(p []byte) (int, error) {
	return l.r.Read(p)
}

func (l *layeredReader) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
