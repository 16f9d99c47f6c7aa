package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/supervisor"
	"github.com/hapless-cli/hapless/internal/ui"
)

func newRunCmd() *cobra.Command {
	var name string
	var workdir string
	var redirectStderr bool
	var check bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run -- cmd...",
		Short: "Create and launch a hap",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			shellCmd := strings.Join(args, " ")
			ui.Debugf("creating hap: cmd=%q name=%q workdir=%q", shellCmd, name, workdir)

			h, err := d.Sup.Create(shellCmd, supervisor.CreateOptions{
				Name:           name,
				Workdir:        workdir,
				RedirectStderr: redirectStderr || d.Cfg.RedirectStderr,
			})
			if err != nil {
				return err
			}

			if timeout <= 0 {
				timeout = d.Cfg.FailfastTimeout
			}
			probeOut := outputFile(d)
			if flagNonInteractive {
				probeOut = nil
			}
			result, err := d.Sup.Run(h, supervisor.RunOptions{
				Check:    check,
				Timeout:  timeout,
				ProbeOut: probeOut,
			})
			if err != nil {
				if result != nil && result.Stderr != "" {
					d.Printer.Error(result.Stderr)
				}
				return err
			}
			d.Printer.Success("started " + h.RawName() + " (id " + h.ID + ")")
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Base name for the hap (default: its id)")
	cmd.Flags().StringVar(&workdir, "workdir", "", "Working directory (default: current directory)")
	cmd.Flags().BoolVar(&redirectStderr, "redirect-stderr", false, "Merge stderr into stdout")
	cmd.Flags().BoolVar(&check, "check", false, "Wait briefly and fail fast if the command exits quickly")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Fast-failure window for --check (default: config.FailfastTimeout)")
	return cmd
}
