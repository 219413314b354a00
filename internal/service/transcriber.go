// Package service contains the transcription orchestrator: the control
// core that drives one submission from acceptance through completion or
// failure, coordinating filenames, storage, the inference engine, and the
// job registry.
package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"speech-transcriber/internal/domain"
	"speech-transcriber/internal/filenames"
	"speech-transcriber/internal/format"
	"speech-transcriber/internal/jobs"
)

// ErrJobNotFound is returned for unknown job ids and output filenames.
var ErrJobNotFound = errors.New("transcription job not found")

// ErrNotReady is returned when an artifact is requested before its job
// completed. In-flight and failed jobs are not distinguished here.
var ErrNotReady = errors.New("transcription not ready")

// Store is the artifact persistence surface the orchestrator needs.
type Store interface {
	SaveUpload(src io.ReadSeeker, filename string) (string, error)
	WriteOutput(filename, text string) (string, error)
	ResolveOutputPath(filename string) string
	DownloadReference(filename string) string
	DeleteFile(path string)
}

// Engine is the opaque inference collaborator.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string) (domain.TranscriptionResult, error)
}

// Transcriber orchestrates the per-job workflow. Submission is split in
// two: Submit persists the upload and the processing record, then hands the
// rest of the workflow to a goroutine and returns. Failures after
// acceptance surface only through the job record.
type Transcriber struct {
	store    Store
	registry *jobs.Registry
	engine   Engine
	events   *jobs.EventLog
	logger   *log.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

// NewTranscriber wires the orchestrator with its collaborators.
func NewTranscriber(store Store, registry *jobs.Registry, engine Engine, events *jobs.EventLog, logger *log.Logger) *Transcriber {
	return &Transcriber{
		store:    store,
		registry: registry,
		engine:   engine,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit accepts one transcription request: it persists the upload, creates
// the processing record, starts the background workflow, and returns the
// record as it stood at acceptance time.
func (t *Transcriber) Submit(src io.ReadSeeker, originalFilename string, mode domain.OutputMode) (domain.JobRecord, error) {
	jobID := uuid.New().String()

	uploadName := filenames.BuildUploadName(jobID, filepath.Ext(originalFilename))
	uploadPath, err := t.store.SaveUpload(src, uploadName)
	if err != nil {
		return domain.JobRecord{}, err
	}

	inputName := originalFilename
	if inputName == "" {
		inputName = uploadName
	}

	now := t.now().UTC()
	rec := domain.JobRecord{
		ID:            jobID,
		Status:        domain.JobStatusProcessing,
		InputFilename: inputName,
		OutputType:    mode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	t.registry.Create(rec)
	t.events.Publish(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeAccepted,
		Status:  domain.JobStatusProcessing,
		Message: inputName,
	})

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.run(jobID, uploadPath, inputName, mode)
	}()

	return rec, nil
}

// run executes the workflow for one accepted job. The upload file is
// deleted whatever the outcome.
func (t *Transcriber) run(jobID, uploadPath, originalName string, mode domain.OutputMode) {
	defer t.store.DeleteFile(uploadPath)

	result, err := t.engine.Transcribe(context.Background(), uploadPath)
	if err != nil {
		t.fail(jobID, err)
		return
	}

	var payload string
	switch mode {
	case domain.OutputModeSRT:
		payload = format.SRT(result.Segments)
	default:
		payload = format.Text(result.Segments)
	}

	outputName := filenames.BuildOutputName(originalName, mode, t.now())
	if _, err := t.store.WriteOutput(outputName, payload); err != nil {
		t.fail(jobID, err)
		return
	}
	ref := t.store.DownloadReference(outputName)

	status := domain.JobStatusCompleted
	t.registry.Update(jobID, jobs.Patch{
		Status:          &status,
		DurationSeconds: &result.DurationSeconds,
		OutputFilename:  &outputName,
		DownloadURL:     &ref,
	})
	t.events.Publish(jobs.Event{
		JobID:          jobID,
		Type:           jobs.EventTypeCompleted,
		Status:         domain.JobStatusCompleted,
		OutputFilename: outputName,
	})
	t.logger.Printf("job %s completed: %s (%.1fs of audio, language %s)", jobID, outputName, result.DurationSeconds, result.Language)
}

// fail marks a job failed, preserving the internal cause on the record.
func (t *Transcriber) fail(jobID string, cause error) {
	status := domain.JobStatusFailed
	msg := cause.Error()
	t.registry.Update(jobID, jobs.Patch{
		Status: &status,
		Error:  &msg,
	})
	t.events.Publish(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeFailed,
		Status:  domain.JobStatusFailed,
		Message: msg,
	})
	t.logger.Printf("job %s failed: %v", jobID, cause)
}

// GetStatus returns the current projection of a job record.
func (t *Transcriber) GetStatus(id string) (domain.JobRecord, error) {
	rec, ok := t.registry.Get(id)
	if !ok {
		return domain.JobRecord{}, ErrJobNotFound
	}
	return rec, nil
}

// EnsureDownloadable checks that an output filename belongs to a completed
// job and returns that job.
func (t *Transcriber) EnsureDownloadable(outputFilename string) (domain.JobRecord, error) {
	rec, ok := t.registry.FindByOutputFilename(outputFilename)
	if !ok {
		return domain.JobRecord{}, ErrJobNotFound
	}
	if rec.Status != domain.JobStatusCompleted {
		return domain.JobRecord{}, ErrNotReady
	}
	return rec, nil
}

// ResolveOutputPath exposes the storage path for a stored output.
func (t *Transcriber) ResolveOutputPath(outputFilename string) string {
	return t.store.ResolveOutputPath(outputFilename)
}

// Wait blocks until all in-flight job workflows have settled.
func (t *Transcriber) Wait() {
	t.wg.Wait()
}
