// Package whisper wraps the external speech-recognition engine. The engine
// is an opaque collaborator: audio path in, timed segments plus detected
// language out. Its internals (model loading, acceleration) are not this
// service's concern.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"speech-transcriber/internal/domain"
)

// EngineError is the uniform failure type for inference calls.
type EngineError struct {
	Op     string
	Stderr string
	Err    error
}

// Error formats the failed operation, including engine stderr when present.
func (e *EngineError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("whisper %s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("whisper %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// enginePayload mirrors the JSON document the whisper CLI prints on stdout.
type enginePayload struct {
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
	Segments            []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Engine shells out to a faster-whisper CLI that emits a JSON transcript.
type Engine struct {
	binPath   string
	modelSize string
	device    string
	runner    commandRunner
}

// NewEngine constructs the production engine for the given model preset.
func NewEngine(binPath, modelSize, device string) *Engine {
	return &Engine{
		binPath:   binPath,
		modelSize: modelSize,
		device:    device,
		runner:    &execRunner{},
	}
}

// Transcribe runs the engine on one audio file and parses its transcript.
// The call blocks until the engine returns; there is no timeout here.
func (e *Engine) Transcribe(ctx context.Context, audioPath string) (domain.TranscriptionResult, error) {
	args := buildArgs(e.modelSize, e.device, audioPath)
	res, err := e.runner.Run(ctx, e.binPath, args...)
	if err != nil {
		return domain.TranscriptionResult{}, &EngineError{
			Op:     "run",
			Stderr: strings.TrimSpace(res.Stderr),
			Err:    err,
		}
	}

	var payload enginePayload
	if err := json.Unmarshal([]byte(res.Stdout), &payload); err != nil {
		return domain.TranscriptionResult{}, &EngineError{Op: "parse", Err: err}
	}

	result := domain.TranscriptionResult{
		Language:            payload.Language,
		LanguageProbability: payload.LanguageProbability,
		DurationSeconds:     payload.Duration,
	}
	for _, seg := range payload.Segments {
		result.Segments = append(result.Segments, domain.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	// Some engine builds omit the overall duration; the last segment end is
	// the best available stand-in.
	if result.DurationSeconds == 0 && len(result.Segments) > 0 {
		result.DurationSeconds = result.Segments[len(result.Segments)-1].End
	}

	return result, nil
}

// buildArgs builds the engine CLI invocation for one audio file.
func buildArgs(modelSize, device, audioPath string) []string {
	if device == "" {
		device = "auto"
	}
	return []string{
		"--audio", audioPath,
		"--model", modelSize,
		"--device", device,
	}
}

// NewEngineForTests constructs an engine with an injectable runner.
func NewEngineForTests(binPath, modelSize, device string, runner commandRunner) *Engine {
	return &Engine{
		binPath:   binPath,
		modelSize: modelSize,
		device:    device,
		runner:    runner,
	}
}
