package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/config"
	"github.com/hapless-cli/hapless/internal/exitcodes"
	"github.com/hapless-cli/hapless/internal/ui"
)

var (
	flagDir            string
	flagJSON           bool
	flagFormat         string
	flagVerbose        bool
	flagQuiet          bool
	flagDebug          bool
	flagNoColor        bool
	flagNonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "hapless",
	Short: "hapless",
	Long:  "Run and supervise background processes without a daemon.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		format := flagFormat
		if flagJSON {
			format = "json"
		}
		ui.InitGlobal(ui.Config{
			NoColor:        flagNoColor,
			NonInteractive: flagNonInteractive,
			JSON:           format == "json",
			YAML:           format == "yaml",
			Verbose:        flagVerbose,
			Quiet:          flagQuiet,
			Debug:          flagDebug || config.Load().Debug,
		})
		config.WarnIfNoColorUnsupported(format != "text", !flagNoColor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "State directory (overrides HAPLESS_DIR)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output a single JSON document")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text|json|yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode: minimal output")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Debug output: extra diagnostic logs")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&flagNonInteractive, "non-interactive", false, "Fail instead of prompting")

	rootCmd.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newLogsCmd(),
		newErrorsCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newKillCmd(),
		newSignalCmd(),
		newCleanCmd(),
		newCleanallCmd(),
		newRestartCmd(),
		newRenameCmd(),
	)
}

// Execute runs the root command and translates its error, if any, into
// the process exit code via the shared exitcodes dispatcher.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitcodes.Exit(exitcodes.CodeForError(err))
	}
}
