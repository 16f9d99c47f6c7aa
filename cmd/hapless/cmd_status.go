package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hapless-cli/hapless/internal/hap"
	"github.com/hapless-cli/hapless/internal/resources"
	"github.com/hapless-cli/hapless/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:     "status [hap]",
		Aliases: []string{"show"},
		Short:   "Show a table of all haps, or a detail panel of one",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			var alias string
			if len(args) == 1 {
				alias = args[0]
			}
			if watch {
				return runStatusWatch(d, alias, interval)
			}
			return runStatus(d, alias, flagVerbose, d.Output)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Continuously refresh the table (text mode only)")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Refresh interval for --watch")
	return cmd
}

// With no subcommand at all, the root command runs the same handler as status.
func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}
		return runStatus(d, "", flagVerbose, d.Output)
	}
}

func runStatus(d *Deps, alias string, verbose bool, out io.Writer) error {
	if alias != "" {
		h, err := d.resolveHap(alias)
		if err != nil {
			return err
		}
		return renderOne(d, h, verbose, out)
	}

	haps, err := d.allHaps()
	if err != nil {
		return err
	}
	return renderAll(d, haps, out)
}

func runStatusWatch(d *Deps, alias string, interval time.Duration) error {
	f, ok := d.Output.(*os.File)
	if !ok {
		f = os.Stdout
	}
	return ui.Watch(context.Background(), f, interval, func() string {
		var buf renderBuf
		if alias != "" {
			h, err := d.resolveHap(alias)
			if err != nil {
				return err.Error()
			}
			_ = renderOne(d, h, flagVerbose, &buf)
		} else {
			haps, err := d.allHaps()
			if err != nil {
				return err.Error()
			}
			_ = renderAll(d, haps, &buf)
		}
		return buf.String()
	})
}

func renderAll(d *Deps, haps []*hap.Hap, out io.Writer) error {
	if d.Printer.Structured(statusDocs(haps)) {
		return nil
	}
	if len(haps) == 0 {
		fmt.Fprintln(out, "No haps are currently running")
		return nil
	}
	headers := []string{"ID", "NAME", "STATUS", "ACCESS", "PID", "AGE", "CMD"}
	rows := make([][]string, 0, len(haps))
	for _, h := range haps {
		rows = append(rows, statusRow(d, h))
	}
	fmt.Fprint(out, ui.Table(d.Printer.Colors, headers, rows, nil))
	return nil
}

func statusRow(d *Deps, h *hap.Hap) []string {
	pid, ok := h.PID()
	pidStr := "-"
	if ok {
		pidStr = fmt.Sprintf("%d", pid)
	}
	age := "-"
	if dur, ok := h.Runtime(); ok {
		age = ui.FormatDuration(dur)
	}
	status := d.Printer.Colors.Status(h.Status())
	access := "yes"
	if !h.AccessibleTo() {
		access = d.Printer.Colors.Error("no")
	}
	return []string{h.ID, h.RawName(), status, access, pidStr, age, h.Cmd()}
}

func renderOne(d *Deps, h *hap.Hap, verbose bool, out io.Writer) error {
	if d.Printer.Structured(statusDoc(h, verbose)) {
		return nil
	}
	p := d.Printer
	fmt.Fprintln(out, p.Colors.Header(" "+h.RawName()+" "))
	fmt.Fprintf(out, "%s %s\n", p.Colors.Label("id:"), p.Colors.Value(h.ID))
	fmt.Fprintf(out, "%s %s\n", p.Colors.Label("status:"), p.Colors.Status(h.Status()))
	p.KeyValueLine("cmd", h.Cmd(), "")
	p.KeyValueLine("workdir", ui.ShortenPath(h.Workdir()), "dim")
	if pid, ok := h.PID(); ok {
		p.KeyValueLine("pid", fmt.Sprintf("%d", pid), "")
	}
	if rc, ok := h.ReturnCode(); ok {
		p.KeyValueLine("rc", fmt.Sprintf("%d", rc), "")
	}
	if dur, ok := h.Runtime(); ok {
		p.KeyValueLine("runtime", ui.FormatDuration(dur), "")
	}
	p.KeyValueLine("owner", h.Owner(), "dim")
	if !h.AccessibleTo() {
		p.KeyValueLine("accessible", "no", "error")
	}

	if verbose {
		fmt.Fprintln(out)
		if pid, ok := h.PID(); ok {
			if usage, err := resources.For(pid); err == nil {
				p.KeyValueLine("cpu", fmt.Sprintf("%.1f%%", usage.CPUPercent), "dim")
				p.KeyValueLine("rss", ui.FormatBytes(int64(usage.RSSBytes)), "dim")
			}
		}
		if env := h.Env(); len(env) > 0 {
			p.Section("environment")
			for k, v := range env {
				fmt.Fprintf(out, "  %s=%s\n", k, v)
			}
		}
	}
	return nil
}

// statusDoc/statusDocs build the JSON/YAML projection of a hap: every
// field in the data model that is a string/int/null.
type hapDoc struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Status     string   `json:"status" yaml:"status"`
	Cmd        string   `json:"cmd" yaml:"cmd"`
	Workdir    string   `json:"workdir" yaml:"workdir"`
	PID        *int     `json:"pid" yaml:"pid"`
	RC         *int     `json:"rc" yaml:"rc"`
	Owner      string   `json:"owner" yaml:"owner"`
	Accessible bool     `json:"accessible" yaml:"accessible"`
	Runtime    *float64 `json:"runtime_seconds" yaml:"runtime_seconds"`
}

func statusDoc(h *hap.Hap, verbose bool) hapDoc {
	doc := hapDoc{
		ID:         h.ID,
		Name:       h.RawName(),
		Status:     string(h.Status()),
		Cmd:        h.Cmd(),
		Workdir:    h.Workdir(),
		Owner:      h.Owner(),
		Accessible: h.AccessibleTo(),
	}
	if pid, ok := h.PID(); ok {
		doc.PID = &pid
	}
	if rc, ok := h.ReturnCode(); ok {
		doc.RC = &rc
	}
	if dur, ok := h.Runtime(); ok {
		secs := dur.Seconds()
		doc.Runtime = &secs
	}
	return doc
}

func statusDocs(haps []*hap.Hap) []hapDoc {
	docs := make([]hapDoc, 0, len(haps))
	for _, h := range haps {
		docs = append(docs, statusDoc(h, false))
	}
	return docs
}

// renderBuf is the minimal io.Writer a watch tick renders into before
// the whole frame is handed to ui.Watch for hash-and-maybe-repaint.
type renderBuf struct{ b []byte }

func (r *renderBuf) Write(p []byte) (int, error) {
	r.b = append(r.b, p...)
	return len(p), nil
}
func (r *renderBuf) String() string { return string(r.b) }
