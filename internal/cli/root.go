// Package cli provides the Cobra command structure for luafmt.
package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/luafmt/internal/configloader"
	"github.com/yaklabco/luafmt/internal/logging"
	"github.com/yaklabco/luafmt/internal/ui/pretty"
	"github.com/yaklabco/luafmt/pkg/format"
	"github.com/yaklabco/luafmt/pkg/runner"
)

// ErrDiffsFound is returned when check mode found files that would be
// reformatted, or when any file failed. It carries the exit code signal
// without producing an error log of its own.
var ErrDiffsFound = errors.New("diffs found")

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	check      bool
	globs      []string
	jobs       int
	verbose    bool
	color      string
	configPath string
	rangeStart int
	rangeEnd   int
}

// NewRootCommand creates the root luafmt command. The root command is
// the format action itself; the only subcommand is version.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "luafmt [flags] <paths...>",
		Short: "An opinionated Lua code formatter",
		Long: `luafmt formats Lua source files in place, or verifies them in check
mode without modifying anything.

Directories are walked recursively, honoring .luafmtignore files, and
files are formatted concurrently. Pass "-" to format standard input to
standard output.

Examples:
  luafmt .                       # Format the current directory
  luafmt src/ init.lua           # Format a directory and a file
  luafmt --check .               # Verify formatting, print diffs
  luafmt -g "**/*.lua" -g "!vendor/**" .
  cat chunk.lua | luafmt -       # Format stdin to stdout`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("no files or directories given, pass paths or \"-\" for stdin")
			}
			return nil
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.verbose {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().BoolVar(&flags.check, "check", false,
		"verify formatting and print diffs instead of writing files")
	rootCmd.Flags().StringSliceVarP(&flags.globs, "glob", "g", nil,
		"glob patterns selecting files inside directories (prefix ! to exclude)")
	rootCmd.Flags().IntVar(&flags.jobs, "jobs", 0,
		fmt.Sprintf("number of parallel workers (0 = %d, the CPU count)", runtime.NumCPU()))
	rootCmd.Flags().IntVar(&flags.rangeStart, "range-start", 0,
		"byte offset where formatting starts (inclusive)")
	rootCmd.Flags().IntVar(&flags.rangeEnd, "range-end", 0,
		"byte offset where formatting stops (exclusive)")

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

func runFormat(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldIndentType, loadResult.Config.IndentType,
		logging.FieldLineEndings, loadResult.Config.LineEndings,
		logging.FieldQuoteStyle, loadResult.Config.QuoteStyle,
	)

	var rangeStart, rangeEnd *int
	if cmd.Flags().Changed("range-start") {
		rangeStart = &flags.rangeStart
	}
	if cmd.Flags().Changed("range-end") {
		rangeEnd = &flags.rangeEnd
	}

	opts := runner.Options{
		Roots:      args,
		WorkingDir: workDir,
		Check:      flags.check,
		Globs:      flags.globs,
		Range:      format.RangeFromValues(rangeStart, rangeEnd),
		Jobs:       flags.jobs,
		Color:      pretty.IsColorEnabled(flags.color, cmd.OutOrStdout()),
		Config:     loadResult.Config,
		Stdin:      cmd.InOrStdin(),
		Stdout:     cmd.OutOrStdout(),
		Logger:     logger,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, opts.Roots,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldCheck, opts.Check,
		logging.FieldGlobs, opts.Globs,
		logging.FieldJobs, opts.Jobs,
	)
	if opts.Range != nil {
		logger.Debug("restricting to byte range", logging.FieldRange, opts.Range)
	}

	code, err := runner.Run(opts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}
	if code != ExitSuccess {
		return ErrDiffsFound
	}
	return nil
}
