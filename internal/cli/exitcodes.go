package cli

// Exit codes for luafmt.
const (
	// ExitSuccess indicates every input was processed cleanly.
	ExitSuccess = 0

	// ExitFailure indicates at least one file failed to format, or
	// check mode found files that would be reformatted.
	ExitFailure = 1
)
