// Package diff renders unified diffs between original and formatted
// text. It reports "no difference" as a nil result so callers can
// distinguish clean files without inspecting payloads.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/luafmt/internal/ui/pretty"
)

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the formatted version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// Line is a single line in a diff hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts
	// in the original; OriginalCount the number of original lines.
	OriginalStart int
	OriginalCount int

	// FormattedStart/FormattedCount describe the formatted side.
	FormattedStart int
	FormattedCount int

	Lines []Line
}

// Unified renders a unified diff of original vs formatted with the
// given number of context lines and a header printed above the hunks.
// It returns nil when the two texts are identical. When color is set,
// hunk markers and add/remove lines are styled for terminal output.
func Unified(original, formatted string, contextLines int, header string, color bool) ([]byte, error) {
	if contextLines < 0 {
		return nil, fmt.Errorf("context lines must be non-negative, got %d", contextLines)
	}
	if original == formatted {
		return nil, nil
	}

	hunks := computeHunks(splitLines(original), splitLines(formatted), contextLines)
	if len(hunks) == 0 {
		return nil, nil
	}

	styles := pretty.NewStyles(color)

	var buf bytes.Buffer
	fmt.Fprintln(&buf, styles.DiffHeader.Render(header))

	for _, hunk := range hunks {
		marker := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.FormattedStart, hunk.FormattedCount)
		fmt.Fprintln(&buf, styles.DiffHunk.Render(marker))

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintln(&buf, styles.DiffContext.Render(" "+line.Content))
			case LineAdd:
				fmt.Fprintln(&buf, styles.DiffAdd.Render("+"+line.Content))
			case LineRemove:
				fmt.Fprintln(&buf, styles.DiffRemove.Render("-"+line.Content))
			}
		}
	}

	return buf.Bytes(), nil
}

// splitLines splits content into lines, removing the trailing newline
// if present.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
