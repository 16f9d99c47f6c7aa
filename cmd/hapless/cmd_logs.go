package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/supervisor"
	"github.com/hapless-cli/hapless/internal/ui"
)

func newLogsCmd() *cobra.Command {
	var follow bool
	var stderr bool
	cmd := &cobra.Command{
		Use:   "logs hap",
		Short: "Dump a hap's stdout (or stderr with -e); -f follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(args[0], stderr, follow)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow the log as it grows")
	cmd.Flags().BoolVarP(&stderr, "stderr", "e", false, "Show stderr instead of stdout")
	return cmd
}

func newErrorsCmd() *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "errors hap",
		Short: "Same as logs -e",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(args[0], true, follow)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow the log as it grows")
	return cmd
}

func runLogs(alias string, stderr, follow bool) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	h, err := d.resolveHap(alias)
	if err != nil {
		return err
	}

	stream := supervisor.Stdout
	if stderr {
		stream = supervisor.Stderr
	}

	if !follow {
		return d.Sup.Logs(h, stream, false, d.Output)
	}

	out := outputFile(d)
	if isInteractive(out) {
		path := h.StdoutPath()
		if stderr {
			path = h.StderrPath()
		}
		return ui.RunLogView(context.Background(), ui.LogViewOptions{
			LogPath: path,
			HapName: h.RawName(),
		})
	}
	return d.Sup.Logs(h, stream, true, d.Output)
}
