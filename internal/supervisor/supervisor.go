// Package supervisor composes StateDir, Hap, and Launcher into the
// high-level operations the CLI calls: create, run, pause, resume,
// signal, kill, clean, rename, restart, logs.
package supervisor

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/hapless-cli/hapless/internal/exitcodes"
	"github.com/hapless-cli/hapless/internal/hap"
	"github.com/hapless-cli/hapless/internal/launcher"
	"github.com/hapless-cli/hapless/internal/probe"
	"github.com/hapless-cli/hapless/internal/statedir"
)

// Supervisor bundles the dependencies every high-level operation needs.
type Supervisor struct {
	SD          *statedir.StateDir
	Shell       string
	HapwrapPath string // path to the hapwrap binary used for detached spawns
	NoFork      bool   // when true, Run(blocking=false) still uses hapwrap (there is no fork path on this runtime); kept only to surface HAPLESS_NO_FORK as a recognized, no-op-compatible setting
}

// New returns a Supervisor wired to sd.
func New(sd *statedir.StateDir, shell, hapwrapPath string) *Supervisor {
	return &Supervisor{SD: sd, Shell: shell, HapwrapPath: hapwrapPath}
}

// CreateOptions configures Create; zero values pick spec defaults.
type CreateOptions struct {
	Name           string // base name; defaults to the hap id
	HID            string // reuse this id instead of allocating a new one (used by Restart)
	Workdir        string // defaults to the current working directory
	RedirectStderr bool
}

// Create allocates a new hap directory and persists its static fields.
// It does not launch anything; call Run afterward.
func (s *Supervisor) Create(cmd string, opts CreateOptions) (*hap.Hap, error) {
	if cmd == "" {
		return nil, exitcodes.EmptyCommand()
	}

	workdir := opts.Workdir
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, exitcodes.InvalidWorkdir()
		}
		workdir = wd
	}
	info, err := os.Stat(workdir)
	if err != nil || !info.IsDir() {
		return nil, exitcodes.InvalidWorkdir()
	}

	id := opts.HID
	if id == "" {
		id, err = s.SD.NextID()
		if err != nil {
			return nil, fmt.Errorf("allocate hap id: %w", err)
		}
	}

	base := opts.Name
	if base == "" {
		base = id
	}
	if s.baseNameTaken(base, id) {
		return nil, exitcodes.NameCollision(base)
	}

	dir := s.SD.HapDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create hap dir: %w", err)
	}
	h := hap.Open(id, dir)
	if err := h.SetName(base); err != nil {
		return nil, err
	}
	if err := h.SetCmd(cmd); err != nil {
		return nil, err
	}
	if err := h.SetWorkdir(workdir); err != nil {
		return nil, err
	}
	if opts.RedirectStderr {
		// No stderr.log is created: its absence IS the redirection flag.
	} else if err := h.TouchStderrSentinel(); err != nil {
		return nil, err
	}
	return h, nil
}

// baseNameTaken reports whether base is already used by a living hap
// directory other than excludeID.
func (s *Supervisor) baseNameTaken(base, excludeID string) bool {
	ids, err := s.SD.ListHapIDs()
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		other := hap.Open(id, s.SD.HapDir(id))
		if other.Name() == base {
			return true
		}
	}
	return false
}

// RunOptions configures Run.
type RunOptions struct {
	Check     bool          // run the fast-failure probe after launch
	Blocking  bool          // inline bind-wait-record in this process (tests only)
	Timeout   time.Duration // probe window; zero uses config.Defaults().FailfastTimeout
	ProbeOut  *os.File      // where the probe renders its spinner, if any
}

// Run launches h's command. In the non-blocking (default) path it
// spawns hapwrap as a detached session leader and returns immediately;
// the blocking path runs bind-wait-record inline, for tests that need
// a synchronous result without a real detached child.
func (s *Supervisor) Run(h *hap.Hap, opts RunOptions) (*probe.Result, error) {
	if opts.Blocking {
		if err := launcher.RunAndWait(h, s.Shell); err != nil {
			return nil, exitcodes.BindFailed(err)
		}
	} else {
		if err := launcher.SpawnDetached(s.HapwrapPath, s.SD.Path(), h.ID); err != nil {
			return nil, exitcodes.BindFailed(err)
		}
	}

	if !opts.Check {
		return nil, nil
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	r := probe.Run(h, timeout, opts.ProbeOut)
	if r.Outcome == probe.QuickFailure {
		return &r, exitcodes.FastFailure()
	}
	return &r, nil
}

// Pause requires h to be RUNNING and stops its process.
func (s *Supervisor) Pause(h *hap.Hap) error {
	if h.Status() != hap.Running {
		return exitcodes.NotRunning(h.Name())
	}
	pid, _ := h.PID()
	return signalPID(pid, sigStop)
}

// Resume requires h to be PAUSED and continues its process.
func (s *Supervisor) Resume(h *hap.Hap) error {
	if h.Status() != hap.Paused {
		return exitcodes.NotPaused(h.Name())
	}
	pid, _ := h.PID()
	return signalPID(pid, sigCont)
}

// Signal requires h to be active and sends it the given signal number.
func (s *Supervisor) Signal(h *hap.Hap, n int) error {
	if !h.Active() {
		return exitcodes.NotRunning(h.Name())
	}
	pid, _ := h.PID()
	return signalPID(pid, n)
}

// Kill SIGKILLs every active hap's entire descendant process tree,
// children first, then the hap's own process. Missing processes at any
// step are tolerated; kill is best-effort.
func (s *Supervisor) Kill(haps []*hap.Hap) {
	for _, h := range haps {
		if !h.Active() {
			continue
		}
		proc := h.Process()
		if proc == nil {
			continue
		}
		killTree(proc)
	}
}

func killTree(proc *process.Process) {
	children, _ := proc.Children()
	for _, child := range children {
		killTree(child)
	}
	_ = proc.Kill()
}

// Clean removes every hap directory with status SUCCESS, and also
// FAILED when includeFailed is set. Active and UNBOUND haps are never
// touched. Returns the haps that were removed.
func (s *Supervisor) Clean(includeFailed bool) ([]*hap.Hap, error) {
	ids, err := s.SD.ListHapIDs()
	if err != nil {
		return nil, err
	}
	var removed []*hap.Hap
	for _, id := range ids {
		h := hap.Open(id, s.SD.HapDir(id))
		switch h.Status() {
		case hap.Success:
			removed = append(removed, h)
		case hap.Failed:
			if includeFailed {
				removed = append(removed, h)
			}
		}
	}
	for _, h := range removed {
		if err := h.Remove(); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// Rename rewrites h's raw name to "<newBase>@<restarts>" (or bare
// newBase when restarts is zero), preserving the restart counter.
func (s *Supervisor) Rename(h *hap.Hap, newBase string) error {
	if s.baseNameTaken(newBase, h.ID) {
		return exitcodes.NameCollision(newBase)
	}
	raw := newBase
	if n := h.Restarts(); n > 0 {
		raw = fmt.Sprintf("%s@%d", newBase, n)
	}
	return h.SetName(raw)
}

// restartKillWait bounds how long Restart waits for rc_file to appear
// after killing an active hap, before proceeding regardless.
const restartKillWait = time.Second

// Restart captures h's identity, tears down the old child if active,
// removes the old directory, and recreates+runs a hap with the same
// id, incremented restart suffix, and original workdir/redirect flag —
// regardless of the caller's current working directory.
func (s *Supervisor) Restart(h *hap.Hap) (*hap.Hap, error) {
	id := h.ID
	base := h.Name()
	cmd := h.Cmd()
	workdir := h.Workdir()
	restarts := h.Restarts()
	redirect := h.RedirectStderr()

	if h.Active() {
		s.Kill([]*hap.Hap{h})
		deadline := time.Now().Add(restartKillWait)
		for time.Now().Before(deadline) {
			if _, ok := h.ReturnCode(); ok {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
	}
	if err := h.Remove(); err != nil {
		return nil, err
	}

	next, err := s.Create(cmd, CreateOptions{
		Name:           base,
		HID:            id,
		Workdir:        workdir,
		RedirectStderr: redirect,
	})
	if err != nil {
		return nil, err
	}
	if err := next.SetName(fmt.Sprintf("%s@%d", base, restarts+1)); err != nil {
		return nil, err
	}
	if _, err := s.Run(next, RunOptions{}); err != nil {
		return next, err
	}
	return next, nil
}
