package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crytic/clif/cmd/exitcodes"
	"github.com/crytic/clif/fuzzing"
	"github.com/crytic/clif/fuzzing/config"
	"github.com/crytic/clif/logging/colors"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// fuzzCmd represents the command provider for fuzzing
var fuzzCmd = &cobra.Command{
	Use:               "fuzz",
	Short:             "Starts a fuzzing run",
	Long:              `Invokes an executable once per candidate of a wordlist, number range or string range and reports whether each invocation succeeded`,
	Args:              cmdValidateFuzzArgs,
	ValidArgsFunction: cmdValidFuzzArgs,
	RunE:              cmdRunFuzz,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the fuzz command
	err := addFuzzFlags(fuzzCmd)
	if err != nil {
		cmdLogger.Panic("Failed to initialize the fuzz command", err)
	}

	// Add the fuzz command and its associated flags to the root command
	rootCmd.AddCommand(fuzzCmd)
}

// cmdValidFuzzArgs will return which flags and sub-commands are valid for dynamic completion for the fuzz command
func cmdValidFuzzArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// Include the "--" prefix to indicate that it is a flag and not a positional argument
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateFuzzArgs makes sure that there are no positional arguments provided to the fuzz command
func cmdValidateFuzzArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("fuzz does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the fuzz command", err)
		return err
	}
	return nil
}

// loadProjectConfig navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (clif.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If clif.json can't be found, use the default project configuration.
// Returns the project configuration and the path of the file it was read from, which is empty for #3.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, string, error) {
	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	// If --config was not used, look for `clif.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, "", errors.WithStack(err)
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		projectConfig, err := config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, "", err
		}
		return projectConfig, configPath, nil
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed {
		return nil, "", errors.Wrapf(existenceError, "unable to find the config file at %v", configPath)
	}

	// Possibility #3: --config flag was not used and clif.json was not found, so use the default project config
	return config.GetDefaultProjectConfig(), "", nil
}

// setupColors turns colors off if noColor is set or stdout is not a terminal, and rebuilds the console writers of
// cmdLogger accordingly. Returns whether colors are off.
func setupColors(noColor bool) bool {
	// Colors are only emitted to a terminal
	if !noColor && !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		noColor = true
	}
	if noColor {
		colors.DisableColor()
		cmdLogger.SetLevel(cmdLogger.Level())
	}
	return noColor
}

// cmdRunFuzz executes the CLI fuzz command: it resolves the project configuration, prints the banner and runs the
// fuzzer to completion.
func cmdRunFuzz(cmd *cobra.Command, args []string) error {
	// Decide on colors before anything is logged
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}
	setupColors(noColor)

	projectConfig, configPath, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithFuzzFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	// The configuration file may turn colors off as well
	projectConfig.Logging.NoColor = setupColors(projectConfig.Logging.NoColor)
	cmdLogger.SetLevel(projectConfig.Logging.Level)

	if configPath != "" {
		cmdLogger.Info("Read the configuration file at: ", colors.Bold, configPath, colors.Reset)
	} else {
		cmdLogger.Debug("No config file found, using the default project configuration")
	}

	fuzzer, err := fuzzing.NewFuzzer(*projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the fuzz command", err)
		return err
	}

	err = printBanner(os.Stdout)
	if err != nil {
		return errors.WithStack(err)
	}

	fuzzing.NewConsoleReporter(os.Stdout).Attach(fuzzer)

	err = fuzzer.Start()
	if errors.Is(err, fuzzing.ErrFuzzerAborted) {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeFuzzerError)
	}
	return err
}
