// Package filekind identifies what kind of data file a path points to.
//
// Identification names the format only. The contents are never parsed or
// normalized here; each format package owns its own reading. Detection
// prefers the file extension and falls back to magic bytes when the
// extension is missing or unknown, so `data.bak` containing a Parquet
// file is still recognized by its PAR1 signature.
package filekind

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
)

// Kind identifies a supported file format.
type Kind string

const (
	KindText     Kind = "text"
	KindCSV      Kind = "csv"
	KindJSON     Kind = "json"
	KindYAML     Kind = "yaml"
	KindTOML     Kind = "toml"
	KindXML      Kind = "xml"
	KindExcel    Kind = "excel"
	KindParquet  Kind = "parquet"
	KindSnapshot Kind = "snapshot"
	KindImage    Kind = "image"
)

// Detection is the result of identifying a file.
type Detection struct {
	Kind       Kind // Detected format
	Compressed bool // Whether the file is gzip-compressed on disk
}

// extKinds maps lowercase file extensions to their format.
var extKinds = map[string]Kind{
	".txt":     KindText,
	".log":     KindText,
	".md":      KindText,
	".csv":     KindCSV,
	".tsv":     KindCSV,
	".json":    KindJSON,
	".jsonl":   KindJSON,
	".ndjson":  KindJSON,
	".yaml":    KindYAML,
	".yml":     KindYAML,
	".toml":    KindTOML,
	".xml":     KindXML,
	".xlsx":    KindExcel,
	".xlsm":    KindExcel,
	".parquet": KindParquet,
	".peek":    KindSnapshot,
	".png":     KindImage,
	".jpg":     KindImage,
	".jpeg":    KindImage,
	".gif":     KindImage,
}

// Magic byte signatures checked when the extension is not conclusive.
var (
	magicGzip    = []byte{0x1f, 0x8b}
	magicParquet = []byte("PAR1")
	magicZip     = []byte("PK\x03\x04")
	magicPNG     = []byte{0x89, 'P', 'N', 'G'}
	magicJPEG    = []byte{0xff, 0xd8, 0xff}
	magicGIF     = []byte("GIF8")
)

// Detect identifies the format of the file at path.
//
// The extension decides when it is known; for gzip-compressed files the
// inner extension decides (data.csv.gz detects as csv). Otherwise the
// first bytes of the file are matched against known signatures, and a
// file that matches nothing is treated as plain text.
func Detect(path string) (Detection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Detection{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
	}
	if info.IsDir() {
		return Detection{}, apperrors.New(apperrors.ErrCodeInvalidPath, "%s is a directory", path)
	}

	head, err := readHead(path, 8)
	if err != nil {
		return Detection{}, err
	}
	compressed := bytes.HasPrefix(head, magicGzip)

	name := filepath.Base(path)
	if compressed {
		name = strings.TrimSuffix(name, ".gz")
	}

	if kind, ok := extKinds[strings.ToLower(filepath.Ext(name))]; ok {
		return Detection{Kind: kind, Compressed: compressed}, nil
	}

	if kind, ok := sniff(head); ok {
		return Detection{Kind: kind, Compressed: compressed}, nil
	}

	return Detection{Kind: KindText, Compressed: compressed}, nil
}

// sniff matches the leading bytes against known signatures.
func sniff(head []byte) (Kind, bool) {
	switch {
	case bytes.HasPrefix(head, magicParquet):
		return KindParquet, true
	case bytes.HasPrefix(head, magicZip):
		return KindExcel, true
	case bytes.HasPrefix(head, magicPNG), bytes.HasPrefix(head, magicJPEG), bytes.HasPrefix(head, magicGIF):
		return KindImage, true
	case bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("<")):
		return KindXML, true
	case bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("{")),
		bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("[")):
		return KindJSON, true
	}
	return "", false
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "no such file: %s", path)
	}
	defer f.Close()

	head := make([]byte, n)
	read, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return head[:read], nil
}

// All returns every kind this build recognizes, in display order.
func All() []Kind {
	return []Kind{
		KindText, KindCSV, KindJSON, KindYAML, KindTOML,
		KindXML, KindExcel, KindParquet, KindSnapshot, KindImage,
	}
}

// Valid reports whether s names a known kind.
func Valid(s string) bool {
	for _, k := range All() {
		if string(k) == s {
			return true
		}
	}
	return false
}
