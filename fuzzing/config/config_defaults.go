package config

import "github.com/rs/zerolog"

// GetDefaultProjectConfig obtains a default configuration for a project. No value source is set: one has to be
// provided through a configuration file or the command line.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Fuzzing: FuzzingConfig{
			Increment: 1,
			Arguments: "",
		},
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			LogDirectory: "",
			NoColor:      false,
		},
	}
}
