package api

import (
	"encoding/json"
	"net/http"
	"time"

	"speech-transcriber/internal/domain"
)

// acceptedResponse echoes the request state at acceptance time. Processing
// may still be in flight when the caller reads it.
type acceptedResponse struct {
	TranscriptionID string            `json:"transcription_id"`
	Status          domain.JobStatus  `json:"status"`
	StartedAt       time.Time         `json:"started_at"`
	OutputType      domain.OutputMode `json:"output_type"`
	InputFilename   string            `json:"input_filename"`
}

// statusResponse is the full current projection of a job record.
type statusResponse struct {
	TranscriptionID string            `json:"transcription_id"`
	Status          domain.JobStatus  `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DurationSeconds *float64          `json:"duration_seconds,omitempty"`
	OutputType      domain.OutputMode `json:"output_type"`
	DownloadURL     string            `json:"download_url,omitempty"`
	Error           string            `json:"error,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// newAcceptedResponse maps an accepted job record onto the wire shape.
func newAcceptedResponse(rec domain.JobRecord) acceptedResponse {
	return acceptedResponse{
		TranscriptionID: rec.ID,
		Status:          rec.Status,
		StartedAt:       rec.CreatedAt,
		OutputType:      rec.OutputType,
		InputFilename:   rec.InputFilename,
	}
}

// newStatusResponse maps a job record onto the wire shape. Duration is
// reported only once the job completed.
func newStatusResponse(rec domain.JobRecord) statusResponse {
	resp := statusResponse{
		TranscriptionID: rec.ID,
		Status:          rec.Status,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
		OutputType:      rec.OutputType,
		DownloadURL:     rec.DownloadURL,
		Error:           rec.Error,
	}
	if rec.Status == domain.JobStatusCompleted {
		duration := rec.DurationSeconds
		resp.DurationSeconds = &duration
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, errorResponse{Error: msg, Detail: detail})
}
