package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion bash",
	Short: "Generate shell completion code for the specified shell (bash)",
	Long: `To load completions:

Bash:

  $ source <(clif completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ clif completion bash > /etc/bash_completion.d/clif
  # macOS:
  $ clif completion bash > $(brew --prefix)/etc/bash_completion.d/clif`,
	ValidArgs: []string{"bash"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			err := cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("unable to generate a bash completion: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
