package cmd

import (
	"fmt"

	"github.com/crytic/clif/fuzzing/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// addFuzzFlags adds the various flags for the fuzz command to cmd
func addFuzzFlags(cmd *cobra.Command) error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	cmd.Flags().SortFlags = false

	// Config file
	cmd.Flags().String("config", "", "path to config file (JSON, or YAML with a .yaml/.yml extension)")

	// Target
	cmd.Flags().StringP("exec", "e", "", "path to the executable to fuzz")

	// Value sources
	cmd.Flags().StringP("wordlist", "w", "", "path to a wordlist, one candidate per line")
	cmd.Flags().StringP("number-range", "n", "", "number range to fuzz with, as start..end (end excluded)")
	cmd.Flags().StringP("string-range", "s", "", "range of string lengths to fuzz with, as lo..hi")
	cmd.MarkFlagsMutuallyExclusive("wordlist", "number-range", "string-range")

	// Increment
	cmd.Flags().UintP("increment", "i", 0,
		fmt.Sprintf("step between range values (unless a config file is provided, default is %d)", defaultConfig.Fuzzing.Increment))

	// Arguments
	cmd.Flags().StringP("arguments", "a", "",
		fmt.Sprintf("arguments to pass to the executable, with %s replaced by each candidate", config.PlaceholderToken))

	// Range and argument behavior
	cmd.Flags().Bool("stepwise-descent", false,
		fmt.Sprintf("step down from start when a number range is descending (unless a config file is provided, default is %t)", defaultConfig.Fuzzing.StepwiseDescent))
	cmd.Flags().Bool("strict-arguments", false,
		fmt.Sprintf("abort when arguments cannot be split for a candidate (unless a config file is provided, default is %t)", defaultConfig.Fuzzing.StrictArguments))
	cmd.Flags().Bool("lossy-output", false,
		fmt.Sprintf("replace output which is not valid UTF-8 instead of reporting an error (unless a config file is provided, default is %t)", defaultConfig.Fuzzing.LossyOutputDecoding))

	// Logging
	cmd.Flags().Bool("no-color", false, "disable colored output")
	cmd.Flags().String("log-level", "",
		fmt.Sprintf("log level for diagnostics (unless a config file is provided, default is %q)", defaultConfig.Logging.Level.String()))
	cmd.Flags().String("log-dir", "", "directory to write a structured log file for the run to")
	return nil
}

// updateProjectConfigWithFuzzFlags will update the given projectConfig with any CLI arguments that were provided to the fuzz command
func updateProjectConfigWithFuzzFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the executable
	if cmd.Flags().Changed("exec") {
		projectConfig.Fuzzing.Executable, err = cmd.Flags().GetString("exec")
		if err != nil {
			return err
		}
	}

	// A value source provided on the command line replaces the one from the config file
	sourceFlags := []struct {
		name  string
		value *string
	}{
		{"wordlist", &projectConfig.Fuzzing.Wordlist},
		{"number-range", &projectConfig.Fuzzing.NumberRange},
		{"string-range", &projectConfig.Fuzzing.StringRange},
	}
	for _, sourceFlag := range sourceFlags {
		if !cmd.Flags().Changed(sourceFlag.name) {
			continue
		}
		projectConfig.Fuzzing.Wordlist = ""
		projectConfig.Fuzzing.NumberRange = ""
		projectConfig.Fuzzing.StringRange = ""
		*sourceFlag.value, err = cmd.Flags().GetString(sourceFlag.name)
		if err != nil {
			return err
		}
	}

	// Update the increment
	if cmd.Flags().Changed("increment") {
		projectConfig.Fuzzing.Increment, err = cmd.Flags().GetUint("increment")
		if err != nil {
			return err
		}
	}

	// Update the argument template
	if cmd.Flags().Changed("arguments") {
		projectConfig.Fuzzing.Arguments, err = cmd.Flags().GetString("arguments")
		if err != nil {
			return err
		}
	}

	// Update descent mode
	if cmd.Flags().Changed("stepwise-descent") {
		projectConfig.Fuzzing.StepwiseDescent, err = cmd.Flags().GetBool("stepwise-descent")
		if err != nil {
			return err
		}
	}

	// Update strict arguments mode
	if cmd.Flags().Changed("strict-arguments") {
		projectConfig.Fuzzing.StrictArguments, err = cmd.Flags().GetBool("strict-arguments")
		if err != nil {
			return err
		}
	}

	// Update lossy output decoding
	if cmd.Flags().Changed("lossy-output") {
		projectConfig.Fuzzing.LossyOutputDecoding, err = cmd.Flags().GetBool("lossy-output")
		if err != nil {
			return err
		}
	}

	// Update color output
	if cmd.Flags().Changed("no-color") {
		projectConfig.Logging.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return err
		}
	}

	// Update the log level
	if cmd.Flags().Changed("log-level") {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		projectConfig.Logging.Level, err = zerolog.ParseLevel(levelName)
		if err != nil {
			return err
		}
	}

	// Update the log directory
	if cmd.Flags().Changed("log-dir") {
		projectConfig.Logging.LogDirectory, err = cmd.Flags().GetString("log-dir")
		if err != nil {
			return err
		}
	}
	return nil
}
