package main

import "github.com/spf13/cobra"

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart hap",
		Short: "Kill, recreate with an incremented restart suffix, and relaunch a hap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			h, err := d.resolveHap(args[0])
			if err != nil {
				return err
			}
			next, err := d.Sup.Restart(h)
			if err != nil {
				return err
			}
			d.Printer.Success("restarted as " + next.RawName())
			return nil
		},
	}
}
