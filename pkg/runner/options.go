// Package runner implements the concurrent formatting pipeline:
// discovery of candidate files, dispatch onto a fixed worker pool, and
// race-free aggregation of per-file outcomes into an exit status.
package runner

import (
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/luafmt/internal/logging"
	"github.com/yaklabco/luafmt/pkg/config"
	"github.com/yaklabco/luafmt/pkg/format"
)

// StdinMarker is the conventional root addressing standard input.
const StdinMarker = "-"

// IgnoreFileName is the per-directory ignore file honored during
// traversal, with gitignore-style pattern semantics.
const IgnoreFileName = ".luafmtignore"

// diffContextLines is the number of context lines in check-mode diffs.
const diffContextLines = 3

// defaultExtensions are the file extensions picked up by recursive
// expansion when no override globs are supplied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultExtensions = []string{".lua", ".luau"}

// FormatFunc is the formatting engine invoked per job. It must be safe
// for concurrent use with a shared config value.
type FormatFunc func(source string, cfg config.Config, rng *format.Range) (string, error)

// Options controls a single formatting run. The value is immutable
// once the run starts and is shared read-only across all jobs.
type Options struct {
	// Roots are the user-specified paths (files, directories, or the
	// stdin marker "-") to process. Must be non-empty.
	Roots []string

	// WorkingDir is the base directory for resolving override glob
	// patterns. Defaults to the process working directory.
	WorkingDir string

	// Check computes diffs instead of rewriting files.
	Check bool

	// Globs are override include patterns. When non-empty they replace
	// the default extension filter for recursively expanded paths.
	Globs []string

	// Range restricts formatting to a byte span of each input.
	Range *format.Range

	// Jobs is the worker-pool size. 0 or negative means "auto"
	// (runtime.NumCPU()).
	Jobs int

	// Color enables styled diff output.
	Color bool

	// Config is the resolved formatting configuration.
	Config config.Config

	// Format is the formatting engine. Defaults to format.Format.
	Format FormatFunc

	// Stdin, Stdout and Logger are injectable for tests. They default
	// to os.Stdin, os.Stdout and the package default logger. All
	// Stdout writes happen on the single sink goroutine.
	Stdin  io.Reader
	Stdout io.Writer
	Logger *log.Logger
}

func (o Options) effectiveJobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.NumCPU()
}

func (o Options) workingDir() string {
	if o.WorkingDir != "" {
		return o.WorkingDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (o Options) formatFunc() FormatFunc {
	if o.Format != nil {
		return o.Format
	}
	return format.Format
}

func (o Options) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Default()
}
