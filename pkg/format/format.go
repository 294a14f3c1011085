// Package format implements the luafmt formatting engine: a
// scanner-aware normalizer for Lua source text.
//
// The engine rewrites layout only. A lightweight scanner tracks short
// strings, long brackets and comments so that literal content is never
// touched. Passes: line-ending normalization, trailing-whitespace
// removal, block re-indentation, quote normalization, blank-line
// collapsing, and a single trailing newline.
//
// Format is a pure function and safe for concurrent use with a shared
// Config value.
package format

import (
	"fmt"
	"strings"

	"github.com/yaklabco/luafmt/pkg/config"
)

// Format returns the formatted form of source under cfg. When rng is
// non-nil, only lines whose byte span lies entirely inside the range
// are rewritten; all other lines pass through verbatim.
func Format(source string, cfg config.Config, rng *Range) (string, error) {
	if source == "" {
		return "", nil
	}

	lines, terms, offsets := splitLines(source)
	eol := cfg.LineEndings.Sequence()

	var (
		st           lexState
		buf          strings.Builder
		level        int
		pendingBlank bool
		wrote        bool
	)

	for idx, raw := range lines {
		sc, err := scanLine(&st, raw, cfg.QuoteStyle)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", idx+1, err)
		}

		inRange := rng.Contains(offsets[idx], offsets[idx]+len(raw))

		var rendered, term string
		switch {
		case !inRange:
			// Outside the requested range the original bytes pass
			// through untouched, terminator included.
			rendered, term = raw, terms[idx]
		case sc.literalHead:
			// Continuation of a long string or comment: verbatim.
			rendered, term = sc.text, eol
		case sc.blank:
			if wrote {
				pendingBlank = true
			}
			level = clampLevel(level + sc.delta)
			continue
		default:
			content := strings.TrimLeft(sc.text, " \t")
			if !sc.literalTail {
				content = strings.TrimRight(content, " \t")
			}
			rendered = indentString(cfg, clampLevel(level+sc.minLevel)) + content
			term = eol
		}

		if pendingBlank {
			buf.WriteString(eol)
			pendingBlank = false
		}
		buf.WriteString(rendered)
		buf.WriteString(term)
		wrote = true
		level = clampLevel(level + sc.delta)
	}

	if st.inLong {
		return "", ErrUnterminatedLong
	}
	if st.inStr {
		return "", ErrUnterminatedString
	}

	return buf.String(), nil
}

// splitLines splits source at line breaks, recording for each line its
// content, its original terminator ("\n", "\r\n", or empty for a final
// unterminated line) and its starting byte offset. A trailing newline
// does not produce a final empty line.
func splitLines(source string) (lines, terms []string, offsets []int) {
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			line, term := source[start:i], "\n"
			if strings.HasSuffix(line, "\r") {
				line, term = line[:len(line)-1], "\r\n"
			}
			lines = append(lines, line)
			terms = append(terms, term)
			offsets = append(offsets, start)
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
		terms = append(terms, "")
		offsets = append(offsets, start)
	}
	return lines, terms, offsets
}

func indentString(cfg config.Config, level int) string {
	if level <= 0 {
		return ""
	}
	if cfg.IndentType == config.IndentTypeSpaces {
		return strings.Repeat(" ", cfg.IndentWidth*level)
	}
	return strings.Repeat("\t", level)
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	return level
}
