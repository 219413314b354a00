package storage

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	root := t.TempDir()
	logger := log.New(io.Discard, "", 0)
	return NewLocalStore(filepath.Join(root, "uploads"), filepath.Join(root, "outputs"), "/api", logger)
}

// TestSaveUploadWritesAndRewinds checks the streamed copy and seek-back.
func TestSaveUploadWritesAndRewinds(t *testing.T) {
	store := newTestStore(t)
	src := bytes.NewReader([]byte("audio-bytes"))

	path, err := store.SaveUpload(src, "job-1.wav")
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read upload: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("upload content = %q", data)
	}

	rest, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("re-read source: %v", err)
	}
	if string(rest) != "audio-bytes" {
		t.Fatalf("source not rewound, remaining = %q", rest)
	}
}

// TestSaveUploadCreatesUploadAreaLazily checks lazy directory creation.
func TestSaveUploadCreatesUploadAreaLazily(t *testing.T) {
	store := newTestStore(t)
	if _, err := os.Stat(store.uploadDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("upload area should not exist before first write, stat err = %v", err)
	}

	if _, err := store.SaveUpload(strings.NewReader("x"), "a.wav"); err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if _, err := os.Stat(store.uploadDir); err != nil {
		t.Fatalf("upload area missing after write: %v", err)
	}
}

// TestWriteOutputAndResolve checks output persistence and path lookup.
func TestWriteOutputAndResolve(t *testing.T) {
	store := newTestStore(t)

	path, err := store.WriteOutput("talk_20250309T140502Z.txt", "[0.00 - 1.50] hi")
	if err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if path != store.ResolveOutputPath("talk_20250309T140502Z.txt") {
		t.Fatalf("path = %q, resolve = %q", path, store.ResolveOutputPath("talk_20250309T140502Z.txt"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "[0.00 - 1.50] hi" {
		t.Fatalf("output content = %q", data)
	}
}

// TestWriteOutputFailureReturnsStoreError checks the typed error path.
func TestWriteOutputFailureReturnsStoreError(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	if err := os.WriteFile(blocked, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	store := NewLocalStore(root, blocked, "/api", log.New(io.Discard, "", 0))
	_, err := store.WriteOutput("nested/out.txt", "text")
	if err == nil {
		t.Fatal("expected write failure")
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error type = %T, want *StoreError", err)
	}
}

// TestDownloadReference checks the locator string construction.
func TestDownloadReference(t *testing.T) {
	store := newTestStore(t)
	got := store.DownloadReference("talk.srt")
	if got != "/api/download/talk.srt" {
		t.Fatalf("DownloadReference() = %q", got)
	}
}

// TestDeleteFileToleratesMissing checks that absence is not an error.
func TestDeleteFileToleratesMissing(t *testing.T) {
	store := newTestStore(t)
	store.DeleteFile(filepath.Join(store.uploadDir, "never-existed.wav"))
	store.DeleteFile("")

	path, err := store.WriteOutput("gone.txt", "x")
	if err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	store.DeleteFile(path)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file should be deleted, stat err = %v", err)
	}
}
