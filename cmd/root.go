package cmd

import (
	"os"

	"github.com/crytic/clif/logging"
	"github.com/crytic/clif/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:     "clif",
	Version: version.GetInfo().Short(),
	Short:   "A command-line argument fuzzer",
	Long:    "clif invokes an executable once per candidate of a wordlist, number range or string range, substituting the candidate into its arguments",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel).NewSubLogger("module", logging.CLI_SERVICE)

func init() {
	// Add a stdout writer to cmdLogger
	cmdLogger.AddWriter(os.Stdout, logging.UNSTRUCTURED, true)
}

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
