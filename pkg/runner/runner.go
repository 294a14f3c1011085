package runner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"github.com/yaklabco/luafmt/internal/logging"
	"github.com/yaklabco/luafmt/pkg/diff"
	"github.com/yaklabco/luafmt/pkg/fsutil"
)

// ErrNoRoots is returned when a run is started with no roots at all.
var ErrNoRoots = errors.New("no files provided")

// Run executes one formatting run: discovery, dispatch onto a fixed
// worker pool, and outcome aggregation. It returns the process exit
// code (0 when every job completed clean, 1 when any job produced a
// diff or failed, or any traversal error occurred).
//
// An error is returned only for configuration problems detected before
// any work is dispatched: no roots, or an unparsable override glob.
func Run(opts Options) (int, error) {
	if len(opts.Roots) == 0 {
		return 1, ErrNoRoots
	}

	overrides := make([]glob.Glob, 0, len(opts.Globs))
	for _, pattern := range opts.Globs {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return 1, fmt.Errorf("cannot parse glob pattern %q: %w", pattern, err)
		}
		overrides = append(overrides, matcher)
	}

	logger := opts.logger()
	jobs := opts.effectiveJobs()
	logger.Debug("starting worker pool", logging.FieldJobs, jobs)

	var status Status
	entries := make(chan Entry, jobs*2)
	outcomes := make(chan Outcome, jobs)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(opts, entries, outcomes)
		}()
	}

	sinkDone := make(chan struct{})
	go sink(opts, &status, outcomes, sinkDone)

	explicit := make(map[string]struct{}, len(opts.Roots))
	for _, root := range opts.Roots {
		if root != StdinMarker {
			explicit[filepath.Clean(root)] = struct{}{}
		}
	}

	walker := &discoverer{
		opts:      opts,
		overrides: overrides,
		explicit:  explicit,
		emit:      func(entry Entry) { entries <- entry },
		fail: func(err error) {
			logger.Error("could not walk", logging.FieldError, err)
			status.Fail()
		},
	}
	walker.run()

	// No more entries will ever be produced. Workers drain, then the
	// outcome channel closes, then the sink finishes.
	close(entries)
	wg.Wait()
	close(outcomes)
	<-sinkDone

	return status.Code(), nil
}

// worker processes entries until the entry channel closes, emitting
// exactly one outcome per entry.
func worker(opts Options, entries <-chan Entry, outcomes chan<- Outcome) {
	for entry := range entries {
		outcomes <- process(opts, entry)
	}
}

func process(opts Options, entry Entry) Outcome {
	if entry.Stdin {
		return processStdin(opts)
	}
	return processFile(opts, entry.Path)
}

// processFile formats one file: read, format, then either diff
// (check-mode) or write back in place.
func processFile(opts Options, path string) Outcome {
	content, mode, err := fsutil.ReadFile(path)
	if err != nil {
		return failure(path, fmt.Errorf("failed to read %s: %w", path, err))
	}
	source := string(content)

	started := time.Now()
	formatted, err := opts.formatFunc()(source, opts.Config, opts.Range)
	if err != nil {
		return failure(path, fmt.Errorf("could not format file %s: %w", path, err))
	}
	opts.logger().Debug("formatted file",
		logging.FieldPath, path,
		logging.FieldDuration, time.Since(started))

	if opts.Check {
		payload, err := diff.Unified(source, formatted, diffContextLines,
			fmt.Sprintf("Diff in %s:", path), opts.Color)
		if err != nil {
			return failure(path, fmt.Errorf("failed to create diff for %s: %w", path, err))
		}
		if payload == nil {
			return Outcome{Kind: OutcomeCompleted, Path: path}
		}
		return Outcome{Kind: OutcomeDiff, Path: path, Payload: payload}
	}

	if formatted != source {
		if err := fsutil.WriteAtomic(path, []byte(formatted), mode); err != nil {
			return failure(path, fmt.Errorf("could not write to %s: %w", path, err))
		}
	}
	return Outcome{Kind: OutcomeCompleted, Path: path}
}

// processStdin formats buffered standard input. The formatted content
// travels in the outcome payload so the sink performs the only stdout
// write. Check-mode is rejected: there is no file to diff against.
func processStdin(opts Options) Outcome {
	if opts.Check {
		return Outcome{Kind: OutcomeFailed,
			Err: errors.New("--check cannot be used whilst reading from stdin")}
	}

	buf, err := io.ReadAll(opts.stdin())
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("could not read from stdin: %w", err)}
	}

	formatted, err := opts.formatFunc()(string(buf), opts.Config, opts.Range)
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("could not format from stdin: %w", err)}
	}

	return Outcome{Kind: OutcomeCompleted, Payload: []byte(formatted)}
}

func failure(path string, err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Path: path, Err: err}
}

// sink is the single consumer of job outcomes. Routing every output
// write through this one goroutine is what keeps diff payloads and
// stdin pass-through from interleaving.
func sink(opts Options, status *Status, outcomes <-chan Outcome, done chan<- struct{}) {
	defer close(done)

	logger := opts.logger()
	out := opts.stdout()

	for outcome := range outcomes {
		switch outcome.Kind {
		case OutcomeCompleted:
			if len(outcome.Payload) > 0 {
				if _, err := out.Write(outcome.Payload); err != nil {
					logger.Error("could not output to stdout", logging.FieldError, err)
					status.Fail()
				}
			}

		case OutcomeDiff:
			status.Fail()
			if _, err := out.Write(outcome.Payload); err != nil {
				// Secondary failure: the diff itself already decided
				// the exit status.
				logger.Error("could not write diff",
					logging.FieldPath, outcome.Path,
					logging.FieldError, err)
			}

		case OutcomeFailed:
			status.Fail()
			logger.Error("format failed", logging.FieldError, outcome.Err)
		}
	}
}
