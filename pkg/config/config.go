// Package config defines the formatting configuration types for luafmt.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "fmt"

// LineEndings specifies the line-ending style emitted by the formatter.
type LineEndings string

const (
	LineEndingsUnix    LineEndings = "unix"
	LineEndingsWindows LineEndings = "windows"
)

// IsValid returns true if the line-ending style is recognized.
func (l LineEndings) IsValid() bool {
	switch l {
	case LineEndingsUnix, LineEndingsWindows:
		return true
	default:
		return false
	}
}

// Sequence returns the literal line terminator for this style.
func (l LineEndings) Sequence() string {
	if l == LineEndingsWindows {
		return "\r\n"
	}
	return "\n"
}

// IndentType specifies whether indentation uses tabs or spaces.
type IndentType string

const (
	IndentTypeTabs   IndentType = "tabs"
	IndentTypeSpaces IndentType = "spaces"
)

// IsValid returns true if the indent type is recognized.
func (i IndentType) IsValid() bool {
	switch i {
	case IndentTypeTabs, IndentTypeSpaces:
		return true
	default:
		return false
	}
}

// QuoteStyle controls how short string literals are quoted.
type QuoteStyle string

const (
	// QuoteStyleAutoPreferDouble uses double quotes unless the string
	// contains one (default).
	QuoteStyleAutoPreferDouble QuoteStyle = "auto_prefer_double"
	// QuoteStyleAutoPreferSingle uses single quotes unless the string
	// contains one.
	QuoteStyleAutoPreferSingle QuoteStyle = "auto_prefer_single"
	// QuoteStyleForceDouble always uses double quotes.
	QuoteStyleForceDouble QuoteStyle = "force_double"
	// QuoteStyleForceSingle always uses single quotes.
	QuoteStyleForceSingle QuoteStyle = "force_single"
)

// IsValid returns true if the quote style is recognized.
func (q QuoteStyle) IsValid() bool {
	switch q {
	case QuoteStyleAutoPreferDouble, QuoteStyleAutoPreferSingle,
		QuoteStyleForceDouble, QuoteStyleForceSingle:
		return true
	default:
		return false
	}
}

// Config is the resolved formatting configuration for a run.
// A Config value is immutable once a run starts and is shared read-only
// across every concurrent formatting job.
type Config struct {
	// ColumnWidth is the advisory maximum line width.
	ColumnWidth int `toml:"column_width" yaml:"column_width"`

	// LineEndings selects unix (LF) or windows (CRLF) terminators.
	LineEndings LineEndings `toml:"line_endings" yaml:"line_endings"`

	// IndentType selects tabs or spaces for indentation.
	IndentType IndentType `toml:"indent_type" yaml:"indent_type"`

	// IndentWidth is the number of characters per indent level.
	// For tabs this controls alignment width only.
	IndentWidth int `toml:"indent_width" yaml:"indent_width"`

	// QuoteStyle controls quote normalization of string literals.
	QuoteStyle QuoteStyle `toml:"quote_style" yaml:"quote_style"`

	// NoCallParentheses keeps string/table call sugar (`f"x"`, `f{...}`)
	// instead of adding parentheses.
	NoCallParentheses bool `toml:"no_call_parentheses" yaml:"no_call_parentheses"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() Config {
	return Config{
		ColumnWidth: 120,
		LineEndings: LineEndingsUnix,
		IndentType:  IndentTypeTabs,
		IndentWidth: 4,
		QuoteStyle:  QuoteStyleAutoPreferDouble,
	}
}

// Validate reports the first invalid field, or nil if the config is usable.
func (c Config) Validate() error {
	if c.ColumnWidth <= 0 {
		return fmt.Errorf("column_width must be positive, got %d", c.ColumnWidth)
	}
	if !c.LineEndings.IsValid() {
		return fmt.Errorf("invalid line_endings %q (want unix or windows)", c.LineEndings)
	}
	if !c.IndentType.IsValid() {
		return fmt.Errorf("invalid indent_type %q (want tabs or spaces)", c.IndentType)
	}
	if c.IndentWidth <= 0 {
		return fmt.Errorf("indent_width must be positive, got %d", c.IndentWidth)
	}
	if !c.QuoteStyle.IsValid() {
		return fmt.Errorf("invalid quote_style %q", c.QuoteStyle)
	}
	return nil
}
