package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Run fields.
	FieldCheck = "check"
	FieldJobs  = "jobs"
	FieldGlobs = "globs"
	FieldRange = "range"

	// Configuration fields.
	FieldConfig      = "config"
	FieldIndentType  = "indent_type"
	FieldLineEndings = "line_endings"
	FieldQuoteStyle  = "quote_style"

	// Timing fields.
	FieldDuration = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
