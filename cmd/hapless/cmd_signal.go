package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/exitcodes"
)

func newSignalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signal hap code",
		Short: "Send an arbitrary signal number to a hap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 || n > 64 {
				return exitcodes.InvalidSignal(n)
			}

			d, err := newDeps()
			if err != nil {
				return err
			}
			h, err := d.resolveHap(args[0])
			if err != nil {
				return err
			}
			if err := d.Sup.Signal(h, n); err != nil {
				return err
			}
			d.Printer.Success("signal sent")
			return nil
		},
	}
}
