// Package diagnostics validates the service environment at startup: the
// external engine binary, the configured model preset, and write access to
// the artifact areas.
package diagnostics

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"speech-transcriber/internal/config"
	"speech-transcriber/internal/whisper"
)

// Status indicates whether a single startup check passed.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Item is one startup check result with an optional operator hint.
type Item struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Report aggregates all startup checks.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	HasFailures bool      `json:"hasFailures"`
	Items       []Item    `json:"items"`
}

// Checker validates external tools and required filesystem paths.
type Checker struct {
	lookPath   func(string) (string, error)
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker() *Checker {
	return &Checker{
		lookPath:   exec.LookPath,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(cfg *config.Config) Report {
	items := []Item{
		c.checkTool(cfg.WhisperBin),
		c.checkModelSize(cfg.ModelSize),
		c.checkDir("upload_dir", "Upload directory", cfg.UploadDir),
		c.checkDir("output_dir", "Output directory", cfg.OutputDir),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == StatusFail {
			hasFailures = true
			break
		}
	}

	return Report{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkTool verifies the engine executable is on PATH.
func (c *Checker) checkTool(name string) Item {
	path, err := c.lookPath(name)
	if err != nil {
		return Item{
			ID:      "tool_" + name,
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("Tool not found in PATH: %s", name),
			Hint:    "Install the whisper CLI and ensure the binary is available on PATH.",
		}
	}

	return Item{
		ID:      "tool_" + name,
		Name:    name,
		Status:  StatusPass,
		Message: fmt.Sprintf("Found at %s", path),
	}
}

// checkModelSize validates the configured model preset name.
func (c *Checker) checkModelSize(size string) Item {
	item := Item{
		ID:   "model_size",
		Name: "Model size",
	}

	if !whisper.KnownModelSize(size) {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Unknown model size: %q", size)
		item.Hint = "Set MODEL_SIZE to one of: " + strings.Join(whisper.ModelSizes(), ", ")
		return item
	}

	item.Status = StatusPass
	item.Message = fmt.Sprintf("Model size %q is supported", size)
	return item
}

// checkDir validates an artifact area exists (creating it) and is writable.
func (c *Checker) checkDir(id, name, dir string) Item {
	item := Item{
		ID:   id,
		Name: name,
	}

	if strings.TrimSpace(dir) == "" {
		item.Status = StatusFail
		item.Message = name + " is empty."
		item.Hint = "Configure a directory where the service can store files."
		return item
	}

	if err := c.mkdirAll(dir, 0o755); err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Cannot create directory: %s", dir)
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(dir, ".write-check-*")
	if err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("Directory is not writable: %s", dir)
		item.Hint = "Choose a writable directory."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = StatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", dir)
	return item
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	lookPath func(string) (string, error),
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		lookPath:   lookPath,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
	}
}
