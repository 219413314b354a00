// Package format renders timed transcript segments into caller-facing text
// representations. Both renderers are pure functions over the segment order
// the engine produced; cues are never merged or split.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"speech-transcriber/internal/domain"
	"speech-transcriber/internal/filenames"
)

// Text renders one line per segment as "[start - end] text" with
// two-decimal second offsets.
func Text(segments []domain.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%.2f - %.2f] %s", seg.Start, seg.End, seg.Text))
	}
	return strings.Join(lines, "\n")
}

// SRT renders standard subtitle cue blocks: 1-based index, time range,
// text, blank-line separator.
func SRT(segments []domain.Segment) string {
	rows := make([]string, 0, len(segments)*4)
	for i, seg := range segments {
		rows = append(rows,
			strconv.Itoa(i+1),
			filenames.FormatTimestamp(seg.Start)+" --> "+filenames.FormatTimestamp(seg.End),
			seg.Text,
			"",
		)
	}
	return strings.Join(rows, "\n")
}
