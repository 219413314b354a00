package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus tracks the lifecycle of a single transcription job. Transitions
// are forward-only: a job leaves processing exactly once and never returns.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// OutputMode selects the rendered transcript representation.
type OutputMode string

const (
	OutputModeText OutputMode = "txt"
	OutputModeSRT  OutputMode = "srt"
)

// ErrUnknownOutputMode is returned for output modes the service cannot render.
var ErrUnknownOutputMode = errors.New("unknown output mode")

// ParseOutputMode validates a caller-supplied mode string.
func ParseOutputMode(raw string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(raw))) {
	case OutputModeText:
		return OutputModeText, nil
	case OutputModeSRT:
		return OutputModeSRT, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOutputMode, raw)
}

// JobRecord is the registry entry for one submitted transcription.
// DurationSeconds, OutputFilename, and DownloadURL are populated only on
// completion; Error only on failure.
type JobRecord struct {
	ID              string
	Status          JobStatus
	InputFilename   string
	OutputType      OutputMode
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DurationSeconds float64
	OutputFilename  string
	DownloadURL     string
	Error           string
}

// Segment is one timed span of recognized speech.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// TranscriptionResult is the inference engine output for one audio file.
// It is consumed once to build an artifact and then discarded.
type TranscriptionResult struct {
	Segments            []Segment
	Language            string
	LanguageProbability float64
	DurationSeconds     float64
}
