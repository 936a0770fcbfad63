package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/internal/files/scanner"
	"github.com/vvka-141/stamp/internal/logging"
	"github.com/vvka-141/stamp/internal/services"
	"github.com/vvka-141/stamp/internal/ui"
	"github.com/vvka-141/stamp/pkg/stamp"
)

var replaceCmd = &cobra.Command{
	Use:   "replace [project_root]",
	Short: "Replace project placeholders in file contents and names",
	Long: `Replace __PROJECT_NAME__ and __PROJECT_LABEL__ throughout a project.

The replace command:
1. Reads project.package.name and project.package.name_managed from cumulusci.yml
2. Scans force-app/ and unpackaged/ for files containing the placeholders
3. Rewrites file contents (only files that actually change are written)
4. Renames files whose names contain a placeholder

Binary files are left untouched. Files that cannot be read, written or
renamed are reported as warnings and the run continues.

Arguments:
  project_root    Project directory (default: current directory)

Examples:
  # Run in the current project
  stamp replace

  # Run against another checkout with a different config file
  stamp replace ../my-project --config cumulusci.yml

  # Leave static resources alone and fail if any file could not be processed
  stamp replace --exclude 'force-app/**/staticresources/**' --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplace,
}

type replaceFlagValues struct {
	configPath string
	dirs       []string
	exclude    []string
	strict     bool
}

var replaceFlags replaceFlagValues

func init() {
	rootCmd.AddCommand(replaceCmd)

	replaceCmd.Flags().StringVarP(&replaceFlags.configPath, "config", "c", stamp.DefaultConfigFileName,
		"Configuration file, relative to project_root unless absolute")
	replaceCmd.Flags().StringSliceVar(&replaceFlags.dirs, "dir", stamp.DefaultSearchDirs(),
		"Directory below project_root to scan (repeatable)")
	replaceCmd.Flags().StringSliceVar(&replaceFlags.exclude, "exclude", nil,
		"Glob of project-relative paths to leave untouched, e.g. 'force-app/**/*.png' (repeatable)")
	replaceCmd.Flags().BoolVar(&replaceFlags.strict, "strict", false,
		fmt.Sprintf("Exit with code %d when any file could not be updated or renamed", stamp.ExitPartialFailure))
}

func runReplace(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	out := cmd.ErrOrStderr()
	logger := logging.NewConsoleLoggerTo(out, getVerboseFlag(cmd))
	fsProvider := filesystem.NewOSFileSystem()
	svc := services.NewPlaceholderService(fsProvider, scanner.NewScannerWithFS(logger, fsProvider), logger)

	summary, err := svc.Run(stamp.RunOptions{
		Root:       root,
		ConfigPath: replaceFlags.configPath,
		SearchDirs: replaceFlags.dirs,
		Exclude:    replaceFlags.exclude,
		Strict:     replaceFlags.strict,
	})
	if err != nil && !errors.Is(err, stamp.ErrPartialFailure) {
		return reportFailure(cmd, logger, err)
	}

	styled := false
	if f, ok := out.(*os.File); ok {
		styled = ui.ColorEnabled(f)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, ui.RenderSummary(summary, styled))

	if err != nil {
		return reportFailure(cmd, logger, err)
	}
	return nil
}

// reportFailure logs a run failure through the logger and keeps cobra from
// printing it a second time. The error is still returned for the exit code.
func reportFailure(cmd *cobra.Command, logger stamp.Logger, err error) error {
	logger.Error("%v", err)
	cmd.SilenceErrors = true
	return err
}
