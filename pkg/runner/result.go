package runner

import "sync/atomic"

// Entry is one discovered unit of work: a regular file, or standard
// input when Stdin is set.
type Entry struct {
	Stdin bool
	Path  string
}

// OutcomeKind tags the terminal result of one formatting job.
type OutcomeKind int

const (
	// OutcomeCompleted means the job finished with nothing further to
	// report: the file was written (or already clean), or formatted
	// stdin content is carried in Payload for the sink to stream.
	OutcomeCompleted OutcomeKind = iota

	// OutcomeDiff means check-mode found a difference; Payload holds
	// the rendered diff.
	OutcomeDiff

	// OutcomeFailed means the job failed; Err carries the cause with
	// path context.
	OutcomeFailed
)

// Outcome is the result of one formatting job. Exactly one Outcome is
// produced per dispatched job, on every exit path.
type Outcome struct {
	Kind    OutcomeKind
	Path    string // empty for stdin jobs
	Payload []byte
	Err     error
}

// Status is the shared exit-status cell for a run. It starts at 0 and
// is set to 1 the first time any diff or failure is observed; the
// transition is monotonic and safe under concurrent writers.
type Status struct {
	code atomic.Int32
}

// Fail records a failure. Once failed, a run never reports success.
func (s *Status) Fail() {
	s.code.CompareAndSwap(0, 1)
}

// Code returns the process exit code: 0 for success, 1 otherwise.
func (s *Status) Code() int {
	return int(s.code.Load())
}
