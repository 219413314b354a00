package filenames

import (
	"regexp"
	"testing"
	"time"

	"speech-transcriber/internal/domain"
)

var safeName = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// TestSanitizeStem checks character filtering and trimming rules.
func TestSanitizeStem(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"meeting notes", "meeting_notes"},
		{"..weird__", "weird"},
		{"Ünïcode täpe", "n_code_t_pe"},
		{"already-safe_1.2", "already-safe_1.2"},
		{"", "audio"},
		{"...", "audio"},
	}

	for _, tc := range cases {
		got := SanitizeStem(tc.in)
		if got != tc.want {
			t.Fatalf("SanitizeStem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestSanitizeStemIdempotent verifies a second pass changes nothing.
func TestSanitizeStemIdempotent(t *testing.T) {
	inputs := []string{"a b c.mp3", "???", "x__", ".hidden", "ok-name_9"}
	for _, in := range inputs {
		once := SanitizeStem(in)
		twice := SanitizeStem(once)
		if once != twice {
			t.Fatalf("SanitizeStem not idempotent for %q: %q then %q", in, once, twice)
		}
		if !safeName.MatchString(once) {
			t.Fatalf("SanitizeStem(%q) = %q, contains unsafe characters", in, once)
		}
	}
}

// TestBuildUploadName checks suffix handling including the .wav default.
func TestBuildUploadName(t *testing.T) {
	if got := BuildUploadName("job-1", ".mp3"); got != "job-1.mp3" {
		t.Fatalf("upload name = %q, want job-1.mp3", got)
	}
	if got := BuildUploadName("job-2", ""); got != "job-2.wav" {
		t.Fatalf("upload name = %q, want job-2.wav", got)
	}
}

// TestBuildOutputName checks stem sanitizing and the UTC timestamp marker.
func TestBuildOutputName(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 5, 2, 0, time.UTC)

	got := BuildOutputName("team meeting.mp3", domain.OutputModeSRT, at)
	if got != "team_meeting_20250309T140502Z.srt" {
		t.Fatalf("output name = %q", got)
	}

	got = BuildOutputName("", domain.OutputModeText, at)
	if got != "audio_20250309T140502Z.txt" {
		t.Fatalf("output name for empty original = %q", got)
	}
}

// TestFormatTimestamp checks subtitle timing format and padding.
func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{3725.25, "01:02:05,250"},
		{59.999, "00:00:59,999"},
	}

	for _, tc := range cases {
		if got := FormatTimestamp(tc.in); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
