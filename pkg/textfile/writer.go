package textfile

import (
	"bufio"
	"os"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// Writer writes lines to a text file through a buffer. Written data may
// sit in the buffer until Flush or Close; Close always flushes before
// releasing the file handle.
type Writer struct {
	path   string
	f      *os.File
	bw     *bufio.Writer
	closed bool
}

// Create opens path for writing, truncating any existing contents.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

// Append opens path for writing, appending to existing contents.
// The file is created if it does not exist.
func Append(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, f: f, bw: bufio.NewWriter(f)}, nil
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) error {
	if w.closed {
		return apperrors.Wrap(apperrors.ErrCodeClosedHandle, os.ErrClosed, "write to closed file: %s", w.path)
	}
	if _, err := w.bw.WriteString(s); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// Flush forces buffered data out to the file.
func (w *Writer) Flush() error {
	if w.closed {
		return apperrors.Wrap(apperrors.ErrCodeClosedHandle, os.ErrClosed, "flush of closed file: %s", w.path)
	}
	return w.bw.Flush()
}

// Close flushes buffered data and releases the file handle.
// Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flushErr := w.bw.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
