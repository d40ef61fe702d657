package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/datapeek/datapeek/pkg/buildinfo"
	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/filekind"
	"github.com/datapeek/datapeek/pkg/inspect"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type fileEntry struct {
	Name       string    `json:"name"`
	Kind       string    `json:"kind,omitempty"`
	Compressed bool      `json:"compressed,omitempty"`
	SizeBytes  int64     `json:"size_bytes"`
	ModTime    time.Time `json:"mod_time"`
}

type filesResponse struct {
	Files []fileEntry `json:"files"`
}

type describeResponse struct {
	Summary    *inspect.Summary `json:"summary"`
	CacheHit   bool             `json:"cache_hit"`
	DurationMS int64            `json:"duration_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleFiles(w http.ResponseWriter, _ *http.Request) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to read workspace"))
		return
	}

	files := make([]fileEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		fe := fileEntry{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			ModTime:   info.ModTime().UTC(),
		}
		if det, err := filekind.Detect(filepath.Join(s.root, entry.Name())); err == nil {
			fe.Kind = string(det.Kind)
			fe.Compressed = det.Compressed
		}
		files = append(files, fe)
	}

	writeJSON(w, http.StatusOK, filesResponse{Files: files})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")
	if err := apperrors.ValidatePath(rel); err != nil {
		writeError(w, err)
		return
	}

	opts := inspect.Options{
		Path:    filepath.Join(s.root, rel),
		Sheet:   r.URL.Query().Get("sheet"),
		Refresh: r.URL.Query().Get("refresh") == "true",
	}
	if v := r.URL.Query().Get("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "rows must be an integer, got %q", v))
			return
		}
		opts.HeadRows = n
	}

	res, err := s.runner.Describe(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	// Report the workspace-relative path, not the joined one.
	res.Summary.Path = rel
	writeJSON(w, http.StatusOK, describeResponse{
		Summary:    res.Summary,
		CacheHit:   res.CacheHit,
		DurationMS: res.Duration.Milliseconds(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case apperrors.ErrCodeFileNotFound, apperrors.ErrCodeSheetNotFound,
		apperrors.ErrCodeSnapshotNotFound, apperrors.ErrCodeRecordNotFound,
		apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidSheet,
		apperrors.ErrCodeInvalidDelimiter, apperrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case apperrors.ErrCodeParse:
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, errorResponse{Error: apperrors.UserMessage(err), Code: string(code)})
}
