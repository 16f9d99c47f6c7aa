package main

import "github.com/spf13/cobra"

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename hap new-name",
		Short: "Rename a hap, preserving its restart counter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			h, err := d.resolveHap(args[0])
			if err != nil {
				return err
			}
			if err := d.Sup.Rename(h, args[1]); err != nil {
				return err
			}
			d.Printer.Success("renamed to " + args[1])
			return nil
		},
	}
}
