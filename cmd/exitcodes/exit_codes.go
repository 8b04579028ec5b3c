package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors had occurred. Failing invocations of the fuzzed target do not change the
	// exit code.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred, such as invalid arguments, an invalid
	// configuration or a missing wordlist.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeFuzzerError indicates that a fuzzing run was aborted after it started consuming candidates. Note that
	// an error with error code ExitCodeGeneralError and ExitCodeFuzzerError are mutually exclusive errors
	ExitCodeFuzzerError = 6
)
