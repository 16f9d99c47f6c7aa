package main

import "github.com/spf13/cobra"

func newPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause hap",
		Short: "Send SIGSTOP to a running hap",
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
			if err := d.Sup.Pause(h); err != nil {
				return err
			}
			d.Printer.Success("paused " + h.RawName())
			return nil
		},
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume hap",
		Short: "Send SIGCONT to a paused hap",
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
			if err := d.Sup.Resume(h); err != nil {
				return err
			}
			d.Printer.Success("resumed " + h.RawName())
			return nil
		},
	}
}
