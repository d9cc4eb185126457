package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "codeforge",
	Short: "Multi-perspective AI code review",
	Long:  "Codeforge reviews pull requests with a panel of role-specialized LLM reviewers and merges their findings into a single consensus verdict.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print codeforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "codeforge version %s\n", version)
	},
}
