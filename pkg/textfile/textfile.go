// Package textfile reads and writes plain text files line by line.
//
// It is the smallest format package and carries the file lifecycle that
// all the others build on: open a handle, read or write through it,
// close it. A Reader streams lines through a bounded buffer instead of
// loading the whole file, so memory stays flat no matter the file size.
// A Writer buffers writes and flushes them on Close, which is why a
// crash before Close can lose the tail of the output.
//
// Operations on a closed handle fail with a CLOSED_HANDLE error that
// wraps os.ErrClosed, and reading past the end of the input returns
// io.EOF with an empty line, matching the stdlib conventions.
package textfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// MaxLineBytes is the largest single line a Reader accepts.
const MaxLineBytes = 1 << 20

// Reader streams lines from a text file.
type Reader struct {
	path   string
	src    io.ReadCloser
	count  *countingReader
	sc     *bufio.Scanner
	closed bool
}

// Open opens the text file at path for line-by-line reading.
// Gzip-compressed files are decompressed transparently.
func Open(path string) (*Reader, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}

	count := &countingReader{r: src}
	sc := bufio.NewScanner(count)
	sc.Buffer(make([]byte, 64*1024), MaxLineBytes)

	return &Reader{path: path, src: src, count: count, sc: sc}, nil
}

// ReadLine returns the next line without its trailing newline.
// At end of input it returns an empty string and io.EOF.
func (r *Reader) ReadLine() (string, error) {
	if r.closed {
		return "", apperrors.Wrap(apperrors.ErrCodeClosedHandle, os.ErrClosed, "read from closed file: %s", r.path)
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

// BytesRead reports how many uncompressed bytes have been consumed.
func (r *Reader) BytesRead() int64 {
	return r.count.n
}

// Close releases the underlying file. Closing twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}

// Head returns the first n lines of the file at path. Files with fewer
// lines yield what they have; an empty file yields no lines and no error.
func Head(path string, n int) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var lines []string
	for len(lines) < n {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Tail returns the last n lines of the file at path. The whole file is
// streamed once through a bounded ring, so memory use is O(n) lines.
func Tail(path string, n int) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, n)
	total := 0
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ring[total%n] = line
		total++
	}

	if total < n {
		n = total
	}
	lines := make([]string, 0, n)
	for i := total - n; i < total; i++ {
		lines = append(lines, ring[i%len(ring)])
	}
	return lines, nil
}

// CountResult holds the line, word, and byte totals for a file.
type CountResult struct {
	Lines int64 `json:"lines"`
	Words int64 `json:"words"`
	Bytes int64 `json:"bytes"`
}

// Count streams the file once and tallies lines, whitespace-separated
// words, and uncompressed bytes.
func Count(path string) (CountResult, error) {
	r, err := Open(path)
	if err != nil {
		return CountResult{}, err
	}
	defer r.Close()

	var res CountResult
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return CountResult{}, err
		}
		res.Lines++
		res.Words += int64(len(strings.Fields(line)))
	}
	res.Bytes = r.BytesRead()
	return res, nil
}

// countingReader tracks bytes consumed from the wrapped reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
