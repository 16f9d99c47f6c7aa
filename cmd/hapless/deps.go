package main

import (
	"io"
	"os"
	"os/user"

	"github.com/hapless-cli/hapless/internal/config"
	"github.com/hapless-cli/hapless/internal/exitcodes"
	"github.com/hapless-cli/hapless/internal/hap"
	"github.com/hapless-cli/hapless/internal/statedir"
	"github.com/hapless-cli/hapless/internal/supervisor"
	"github.com/hapless-cli/hapless/internal/ui"
)

// Deps holds the dependencies every subcommand handler needs. Bundling
// them behind one struct, built once in newDeps, keeps command bodies
// free of global state and lets tests substitute a scratch StateDir.
type Deps struct {
	Cfg     config.Config
	SD      *statedir.StateDir
	Sup     *supervisor.Supervisor
	Printer ui.Printer
	Output  io.Writer
}

// newDeps builds production dependencies from the environment and the
// parsed persistent flags.
func newDeps() (*Deps, error) {
	cfg := config.Load()
	if flagDir != "" {
		cfg.StateDir = flagDir
	}

	sd, err := statedir.Init(cfg.StateDir)
	if err != nil {
		name := "unknown"
		if u, uerr := user.Current(); uerr == nil {
			name = u.Username
		}
		e := exitcodes.StateInaccessible(cfg.StateDir, name)
		e.Cause = err
		return nil, e
	}

	hapwrap, err := hapwrapPath()
	if err != nil {
		return nil, err
	}

	sup := supervisor.New(sd, cfg.Shell, hapwrap)
	sup.NoFork = cfg.NoFork

	return &Deps{
		Cfg:     cfg,
		SD:      sd,
		Sup:     sup,
		Printer: ui.NewPrinterFromGlobal(),
		Output:  os.Stdout,
	}, nil
}

// hapwrapPath locates the hapwrap companion binary: next to the running
// executable first (the normal installed layout), falling back to PATH.
func hapwrapPath() (string, error) {
	exe, err := os.Executable()
	if err == nil {
		candidate := exePathJoin(exe, "hapwrap")
		if _, statErr := os.Stat(candidate); statErr == nil {
			ui.Debugf("using hapwrap beside executable: %s", candidate)
			return candidate, nil
		}
	}
	ui.Debugf("hapwrap not found beside executable, falling back to PATH")
	return "hapwrap", nil
}

func exePathJoin(exe, name string) string {
	dir := exe
	for i := len(exe) - 1; i >= 0; i-- {
		if exe[i] == '/' {
			dir = exe[:i]
			break
		}
	}
	return dir + "/" + name
}

// resolveHap looks alias up in SD and opens a *hap.Hap, surfacing a
// NoSuchHap or NotAccessible error rather than a bare nil.
func (d *Deps) resolveHap(alias string) (*hap.Hap, error) {
	id, path, ok := d.SD.Lookup(alias)
	if !ok {
		return nil, exitcodes.NoSuchHap(alias)
	}
	h := hap.Open(id, path)
	if !h.AccessibleTo() {
		return nil, exitcodes.NotAccessible(h.Owner())
	}
	return h, nil
}

// allHaps returns every hap directory currently on disk, oldest first.
func (d *Deps) allHaps() ([]*hap.Hap, error) {
	ids, err := d.SD.ListHapIDs()
	if err != nil {
		return nil, err
	}
	out := make([]*hap.Hap, 0, len(ids))
	for _, id := range ids {
		out = append(out, hap.Open(id, d.SD.HapDir(id)))
	}
	return out, nil
}
