package filenames

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"speech-transcriber/internal/domain"
)

// outputTimestampLayout is the UTC marker embedded in output filenames.
// Whole-second resolution: two outputs built from the same original name
// within the same second can collide.
const outputTimestampLayout = "20060102T150405Z"

var invalidChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeStem reduces a caller-supplied name to characters safe for use in
// a filename. Characters outside [A-Za-z0-9._-] become underscores, leading
// and trailing dots and underscores are trimmed, and an empty result falls
// back to "audio". Idempotent.
func SanitizeStem(name string) string {
	sanitized := invalidChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "._")
	if sanitized == "" {
		return "audio"
	}
	return sanitized
}

// BuildUploadName derives the transient upload filename for a job. The job
// id keeps concurrent uploads from colliding; the source suffix defaults to
// .wav when the caller supplied a name without one.
func BuildUploadName(jobID, sourceSuffix string) string {
	if sourceSuffix == "" {
		sourceSuffix = ".wav"
	}
	return jobID + sourceSuffix
}

// BuildOutputName derives the durable output filename from the original
// upload name, the rendering mode, and the completion time (taken as UTC).
func BuildOutputName(originalName string, mode domain.OutputMode, at time.Time) string {
	stem := trimSuffix(originalName)
	return fmt.Sprintf("%s_%s.%s", SanitizeStem(stem), at.UTC().Format(outputTimestampLayout), mode)
}

// FormatTimestamp renders non-negative seconds in the subtitle timing
// convention HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	millis := int((seconds - float64(total)) * 1000)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// trimSuffix drops the extension of a filename, keeping dotfile names whole.
func trimSuffix(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}
