// Package storage owns all filesystem interaction for transcription
// artifacts: transient uploads in a scratch area and durable rendered
// transcripts in an output area. Nothing outside this package touches
// artifact paths directly.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// uploadChunkSize bounds memory held per in-flight upload copy.
const uploadChunkSize = 1 << 20

// StoreError describes a failed filesystem operation in one of the areas.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

// Error formats the failed operation with its path.
func (e *StoreError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// LocalStore persists artifacts on the local filesystem. Both areas are
// created lazily on first write.
type LocalStore struct {
	uploadDir string
	outputDir string
	apiPrefix string
	logger    *log.Logger
}

// NewLocalStore creates a store rooted at the two configured areas.
func NewLocalStore(uploadDir, outputDir, apiPrefix string, logger *log.Logger) *LocalStore {
	return &LocalStore{
		uploadDir: uploadDir,
		outputDir: outputDir,
		apiPrefix: apiPrefix,
		logger:    logger,
	}
}

// SaveUpload streams src into the upload area in fixed-size chunks, never
// holding the whole file in memory, and rewinds src so the caller can read
// it again. Returns the destination path.
func (s *LocalStore) SaveUpload(src io.ReadSeeker, filename string) (string, error) {
	dest := filepath.Join(s.uploadDir, filename)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", &StoreError{Op: "mkdir", Path: filepath.Dir(dest), Err: err}
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", &StoreError{Op: "create", Path: dest, Err: err}
	}

	buf := make([]byte, uploadChunkSize)
	if _, err := io.CopyBuffer(f, src, buf); err != nil {
		_ = f.Close()
		return "", &StoreError{Op: "write", Path: dest, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &StoreError{Op: "close", Path: dest, Err: err}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", &StoreError{Op: "rewind", Path: dest, Err: err}
	}
	return dest, nil
}

// WriteOutput writes rendered transcript text into the output area,
// creating intermediate directories as needed. Returns the written path.
func (s *LocalStore) WriteOutput(filename, text string) (string, error) {
	path := filepath.Join(s.outputDir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &StoreError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", &StoreError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

// ResolveOutputPath joins a filename onto the output area. Pure lookup, no
// existence check.
func (s *LocalStore) ResolveOutputPath(filename string) string {
	return filepath.Join(s.outputDir, filename)
}

// DownloadReference builds the caller-facing locator for a stored output.
func (s *LocalStore) DownloadReference(filename string) string {
	return s.apiPrefix + "/download/" + filename
}

// DeleteFile removes a file best-effort. A missing file is not an error and
// any other failure is logged and swallowed so cleanup never masks the
// primary result of a request.
func (s *LocalStore) DeleteFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("delete artifact %s: %v", path, err)
	}
}
