package logging

// These constants identify the packages that log through a sub-logger. They are attached to every event under the
// "module" key so that structured logs can be filtered per package.
const (
	// FUZZING_SERVICE identifies the fuzzing package
	FUZZING_SERVICE = "fuzzing"
	// CLI_SERVICE identifies the cmd package
	CLI_SERVICE = "cli"
)
