package cmd

import (
	"github.com/crytic/clif/fuzzing/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Overwrite an existing configuration
	initCmd.Flags().Bool("force", false, "overwrite the output file if it already exists")

	// Target executable
	initCmd.Flags().StringP("exec", "e", "", "path to the executable to fuzz")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the executable
	if cmd.Flags().Changed("exec") {
		projectConfig.Fuzzing.Executable, err = cmd.Flags().GetString("exec")
		if err != nil {
			return err
		}
	}
	return nil
}
