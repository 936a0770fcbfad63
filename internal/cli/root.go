package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Turn a project template into a named project",
	Long: `stamp fills in project-template placeholders.

It reads project.package.name and project.package.name_managed from
cumulusci.yml and replaces __PROJECT_NAME__ and __PROJECT_LABEL__ in the
contents and names of files under force-app/ and unpackaged/.

Exit Codes:
  0  - Success (per-file warnings do not change the exit code)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - cumulusci.yml missing, malformed or incomplete
  15 - Some files could not be updated (only with --strict)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
