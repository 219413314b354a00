package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"speech-transcriber/internal/domain"
	"speech-transcriber/internal/jobs"
	"speech-transcriber/internal/service"
)

// multipartMemoryLimit bounds how much of a parsed form stays in memory;
// larger uploads spill to temp files.
const multipartMemoryLimit = 32 << 20

// Handler backs the transcription HTTP endpoints.
type Handler struct {
	svc            *service.Transcriber
	events         *jobs.EventLog
	maxUploadBytes int64
}

// NewHandler creates the endpoint handler.
func NewHandler(svc *service.Transcriber, events *jobs.EventLog, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		events:         events,
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe accepts a multipart audio upload and responds 202 with the
// job's acceptance projection. The transcription itself runs in the
// background; internal failure causes are never echoed in error bodies.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		// The multipart reader does not always wrap the limit error, so
		// match on the message as a fallback.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large",
				fmt.Sprintf("limit is %d bytes", h.maxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field", "")
		return
	}
	defer file.Close()

	modeRaw := r.FormValue("mode")
	if modeRaw == "" {
		modeRaw = string(domain.OutputModeText)
	}
	mode, err := domain.ParseOutputMode(modeRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported output mode", modeRaw)
		return
	}

	rec, err := h.svc.Submit(file, header.Filename, mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store upload", "")
		return
	}

	writeJSON(w, http.StatusAccepted, newAcceptedResponse(rec))
}

// Status returns the current projection of one job.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetStatus(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid transcription id", "")
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(rec))
}

// Download serves a completed transcript by its output filename: 404 for
// unknown filenames, 409 while the owning job has not completed.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")

	if _, err := h.svc.EnsureDownloadable(filename); err != nil {
		switch {
		case errors.Is(err, service.ErrNotReady):
			writeError(w, http.StatusConflict, "transcription not ready", "")
		default:
			writeError(w, http.StatusNotFound, "file not found", "")
		}
		return
	}

	path := h.svc.ResolveOutputPath(filename)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "file not found", "")
		return
	}

	mediaType := "text/plain; charset=utf-8"
	if strings.HasSuffix(filename, ".srt") {
		mediaType = "application/x-subrip"
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

// Events returns lifecycle events with sequence greater than ?since=N.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	since := int64(0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since parameter", raw)
			return
		}
		since = parsed
	}

	events := h.events.Since(since)
	writeJSON(w, http.StatusOK, map[string][]jobs.Event{"events": events})
}
