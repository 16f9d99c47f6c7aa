package main

import (
	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/exitcodes"
	"github.com/hapless-cli/hapless/internal/hap"
)

func newKillCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "kill [hap]",
		Short: "SIGKILL a hap's process tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return exitcodes.Usagef("kill takes either a hap or -a, not both or neither")
			}
			d, err := newDeps()
			if err != nil {
				return err
			}

			var targets []*hap.Hap
			if all {
				haps, err := d.allHaps()
				if err != nil {
					return err
				}
				targets = haps
			} else {
				h, err := d.resolveHap(args[0])
				if err != nil {
					return err
				}
				targets = []*hap.Hap{h}
			}

			d.Sup.Kill(targets)
			d.Printer.Success("kill signal sent")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Kill every active hap")
	return cmd
}
