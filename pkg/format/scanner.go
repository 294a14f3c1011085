package format

import (
	"errors"
	"strings"

	"github.com/yaklabco/luafmt/pkg/config"
)

// Scanner errors surfaced as formatting failures.
var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrUnterminatedLong   = errors.New("unterminated long bracket")
)

// lexState carries literal state across lines.
type lexState struct {
	// inLong is true inside a long bracket ([[ ... ]], [=[ ... ]=]),
	// whether string or comment.
	inLong    bool
	longLevel int

	// inStr is true when a short string was continued past a line break
	// with a trailing backslash.
	inStr    bool
	strQuote byte
}

// lineScan is the result of scanning a single line.
type lineScan struct {
	// text is the line content with quote normalization applied to
	// code regions. Literal and comment regions pass through verbatim.
	text string

	// literalHead is true when the line began inside a long bracket or
	// continued string; such lines are never reindented.
	literalHead bool

	// literalTail is true when the line ends inside a literal; trailing
	// whitespace then belongs to the literal and is kept.
	literalTail bool

	// minLevel is the lowest indent delta reached while scanning,
	// relative to the level at the start of the line. The line itself
	// is indented at startLevel + minLevel.
	minLevel int

	// delta is the net indent change the line applies to what follows.
	delta int

	// blank is true for lines with no content outside literals.
	blank bool
}

// Keywords that open and close blocks. `then` and `do` are the indent
// triggers for if/while/for so that multi-line conditions indent from
// the line that actually opens the block.
var (
	indentKeywords = map[string]struct{}{
		"then": {}, "do": {}, "function": {}, "repeat": {},
	}
	dedentKeywords = map[string]struct{}{
		"end": {}, "until": {},
	}
)

// scanLine consumes one line, updating st and reporting indent deltas
// and rewritten text.
func scanLine(st *lexState, line string, quote config.QuoteStyle) (lineScan, error) {
	var sc lineScan
	var out strings.Builder

	sc.literalHead = st.inLong || st.inStr

	i, n := 0, len(line)
	level, minLevel := 0, 0

	dip := func() {
		level--
		if level < minLevel {
			minLevel = level
		}
	}

	// Resume a backslash-continued short string.
	if st.inStr {
		end, closed, err := scanShortString(line, 0, st.strQuote)
		if err != nil {
			return sc, err
		}
		out.WriteString(line[:end])
		i = end
		if closed {
			st.inStr = false
		} else {
			sc.literalTail = true
		}
	}

	// Resume an open long bracket.
	if st.inLong && i < n {
		closer := "]" + strings.Repeat("=", st.longLevel) + "]"
		idx := strings.Index(line[i:], closer)
		if idx < 0 {
			out.WriteString(line[i:])
			sc.literalTail = true
			sc.text = out.String()
			return sc, nil
		}
		end := i + idx + len(closer)
		out.WriteString(line[i:end])
		i = end
		st.inLong = false
	}
	if st.inStr || st.inLong {
		sc.text = out.String()
		return sc, nil
	}

	for i < n {
		c := line[i]

		switch {
		case c == '-' && i+1 < n && line[i+1] == '-':
			// Comment. A long bracket right after `--` opens a long
			// comment; otherwise the rest of the line is comment text.
			if lvl, ok := longOpen(line, i+2); ok {
				start := i
				i += 2 + lvl + 2
				closer := "]" + strings.Repeat("=", lvl) + "]"
				idx := strings.Index(line[i:], closer)
				if idx < 0 {
					out.WriteString(line[start:])
					st.inLong = true
					st.longLevel = lvl
					sc.literalTail = true
					i = n
					break
				}
				i += idx + len(closer)
				out.WriteString(line[start:i])
				break
			}
			out.WriteString(line[i:])
			i = n

		case c == '\'' || c == '"':
			end, closed, err := scanShortString(line, i+1, c)
			if err != nil {
				return sc, err
			}
			if !closed {
				out.WriteString(line[i:])
				st.inStr = true
				st.strQuote = c
				sc.literalTail = true
				i = n
				break
			}
			out.WriteString(rewriteQuotes(line[i:end], quote))
			i = end

		case c == '[':
			if lvl, ok := longOpen(line, i); ok {
				start := i
				i += lvl + 2
				closer := "]" + strings.Repeat("=", lvl) + "]"
				idx := strings.Index(line[i:], closer)
				if idx < 0 {
					out.WriteString(line[start:])
					st.inLong = true
					st.longLevel = lvl
					sc.literalTail = true
					i = n
					break
				}
				i += idx + len(closer)
				out.WriteString(line[start:i])
				break
			}
			out.WriteByte(c)
			i++

		case c == '{' || c == '(':
			level++
			out.WriteByte(c)
			i++

		case c == '}' || c == ')':
			dip()
			out.WriteByte(c)
			i++

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(line[j]) {
				j++
			}
			word := line[i:j]
			if _, ok := indentKeywords[word]; ok {
				level++
			} else if _, ok := dedentKeywords[word]; ok {
				dip()
			} else if word == "elseif" {
				// Dedents this line; the following `then` restores the
				// block level.
				dip()
			} else if word == "else" {
				// Dedents this line only.
				if level-1 < minLevel {
					minLevel = level - 1
				}
			}
			out.WriteString(word)
			i = j

		default:
			out.WriteByte(c)
			i++
		}
	}

	sc.text = out.String()
	sc.minLevel = minLevel
	sc.delta = level
	sc.blank = !sc.literalHead && !sc.literalTail && strings.TrimSpace(sc.text) == ""
	return sc, nil
}

// scanShortString scans a short string body starting just after the
// opening quote. It returns the index one past the closing quote. When
// the string runs to end of line, closed is false if the final byte is
// a continuation backslash, otherwise the literal is unterminated.
func scanShortString(line string, from int, quote byte) (end int, closed bool, err error) {
	i, n := from, len(line)
	for i < n {
		switch line[i] {
		case '\\':
			if i+1 >= n {
				// Backslash-newline continues the string on the next line.
				return n, false, nil
			}
			i += 2
		case quote:
			return i + 1, true, nil
		default:
			i++
		}
	}
	return n, false, ErrUnterminatedString
}

// longOpen reports whether a long bracket opens at position i,
// returning its level (number of `=` signs).
func longOpen(line string, i int) (level int, ok bool) {
	n := len(line)
	if i >= n || line[i] != '[' {
		return 0, false
	}
	j := i + 1
	for j < n && line[j] == '=' {
		j++
	}
	if j < n && line[j] == '[' {
		return j - i - 1, true
	}
	return 0, false
}

// rewriteQuotes normalizes the quotes of a complete short string
// literal (including its delimiters). Literals containing escapes or
// the target quote are left alone.
func rewriteQuotes(lit string, style config.QuoteStyle) string {
	if len(lit) < 2 {
		return lit
	}
	var target byte
	switch style {
	case config.QuoteStyleAutoPreferDouble, config.QuoteStyleForceDouble:
		target = '"'
	case config.QuoteStyleAutoPreferSingle, config.QuoteStyleForceSingle:
		target = '\''
	default:
		return lit
	}
	if lit[0] == target {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if strings.ContainsAny(body, string(target)+"\\") {
		return lit
	}
	return string(target) + body + string(target)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
