package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove finished haps (optionally including failed ones)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(all)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also remove FAILED haps")
	return cmd
}

func newCleanallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanall",
		Short: "Equivalent to clean --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(true)
		},
	}
}

func runClean(all bool) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	removed, err := d.Sup.Clean(all)
	if err != nil {
		return err
	}
	d.Printer.Success(fmt.Sprintf("removed %d hap(s)", len(removed)))
	return nil
}
