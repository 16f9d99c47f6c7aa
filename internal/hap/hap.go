// Package hap implements the Hap entity: a thin, best-effort adapter
// over a single hap directory. Every read degrades to a zero value
// instead of failing — the next status probe will simply see a more
// complete (or different) picture once the owning launcher catches up.
package hap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Status is the closed five-member status enum derived by Hap.Status. It is
// intentionally a plain string type, not an interface hierarchy: there
// is no behavior that varies by status, only a value read off disk.
type Status string

const (
	Unbound Status = "UNBOUND"
	Running Status = "RUNNING"
	Paused  Status = "PAUSED"
	Success Status = "SUCCESS"
	Failed  Status = "FAILED"
)

// Hap is the in-memory view of a hap directory.
type Hap struct {
	ID   string
	Path string
}

// Open returns a Hap view rooted at path. It performs no I/O; every
// field is read lazily so that repeated polling always sees fresh state.
func Open(id, path string) *Hap {
	return &Hap{ID: id, Path: path}
}

func (h *Hap) file(name string) string { return filepath.Join(h.Path, name) }

// RawName returns the verbatim contents of the name file: "base" or
// "base@restarts".
func (h *Hap) RawName() string {
	b, err := os.ReadFile(h.file("name"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Name returns the base name (the portion before "@").
func (h *Hap) Name() string {
	base, _, _ := strings.Cut(h.RawName(), "@")
	return base
}

// Restarts returns the restart counter encoded as a "@n" suffix; a bare
// name (no suffix) means 0.
func (h *Hap) Restarts() int {
	_, suffix, found := strings.Cut(h.RawName(), "@")
	if !found || suffix == "" {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

// Cmd returns the shell command string this hap runs.
func (h *Hap) Cmd() string {
	b, err := os.ReadFile(h.file("cmd"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Workdir returns the absolute working directory recorded at creation.
func (h *Hap) Workdir() string {
	b, err := os.ReadFile(h.file("workdir"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// PID returns the bound pid, or ok=false if pid_file is absent, empty,
// or unparsable (degrades to "never bound" rather than erroring).
func (h *Hap) PID() (pid int, ok bool) {
	b, err := os.ReadFile(h.file("pid"))
	if err != nil {
		return 0, false
	}
	txt := strings.TrimSpace(string(b))
	if txt == "" {
		return 0, false
	}
	n, err := strconv.Atoi(txt)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReturnCode returns the recorded exit code, or ok=false if rc_file is
// absent. Negative values denote termination by signal.
func (h *Hap) ReturnCode() (rc int, ok bool) {
	b, err := os.ReadFile(h.file("rc"))
	if err != nil {
		return 0, false
	}
	txt := strings.TrimSpace(string(b))
	n, err := strconv.Atoi(txt)
	if err != nil {
		return 0, false
	}
	return n, true
}

// RedirectStderr reports whether stderr was merged into stdout at
// creation time. This is locked in permanently: stderr.log exists (even
// empty) iff stderr is NOT redirected.
func (h *Hap) RedirectStderr() bool {
	_, err := os.Stat(h.file("stderr.log"))
	return os.IsNotExist(err)
}

// StdoutPath and StderrPath return the log file paths. StderrPath
// collapses to StdoutPath when redirection is in effect.
func (h *Hap) StdoutPath() string { return h.file("stdout.log") }
func (h *Hap) StderrPath() string {
	if h.RedirectStderr() {
		return h.file("stdout.log")
	}
	return h.file("stderr.log")
}

// EnvFile returns the persisted environment snapshot written by the
// launcher after bind, or nil if none was ever written.
func (h *Hap) EnvFile() map[string]string {
	b, err := os.ReadFile(h.file("env"))
	if err != nil {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// StartTime is the pid_file mtime (the moment the launcher bound the
// child), or the zero Time if the hap was never bound.
func (h *Hap) StartTime() time.Time {
	info, err := os.Stat(h.file("pid"))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// EndTime is the rc_file mtime (the moment the launcher observed
// termination), or the zero Time if the hap hasn't terminated.
func (h *Hap) EndTime() time.Time {
	info, err := os.Stat(h.file("rc"))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// SetName truncates and writes the raw name file.
func (h *Hap) SetName(raw string) error {
	return os.WriteFile(h.file("name"), []byte(raw+"\n"), 0o644)
}

// SetCmd, SetWorkdir are create-time single writes.
func (h *Hap) SetCmd(cmd string) error {
	return os.WriteFile(h.file("cmd"), []byte(cmd+"\n"), 0o644)
}

func (h *Hap) SetWorkdir(dir string) error {
	return os.WriteFile(h.file("workdir"), []byte(dir+"\n"), 0o644)
}

// TouchStderrSentinel creates an empty stderr.log marking "not redirected".
func (h *Hap) TouchStderrSentinel() error {
	f, err := os.OpenFile(h.file("stderr.log"), os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// SetPID writes the pid file. The write happens before the caller's
// liveness check so a concurrent observer sees the file even if the
// process has already died in the narrow window between start and
// check; the caller is responsible for that follow-up check and for
// surfacing a bind failure if the process has already vanished.
func (h *Hap) SetPID(pid int) error {
	return os.WriteFile(h.file("pid"), []byte(strconv.Itoa(pid)), 0o644)
}

// SetReturnCode writes the rc file exactly once per hap life.
func (h *Hap) SetReturnCode(rc int) error {
	return os.WriteFile(h.file("rc"), []byte(strconv.Itoa(rc)), 0o644)
}

// SetEnv persists the bound process's environment as JSON.
func (h *Hap) SetEnv(env map[string]string) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(h.file("env"), b, 0o644)
}

// Remove deletes the hap directory entirely (REMOVED lifecycle state).
func (h *Hap) Remove() error {
	return os.RemoveAll(h.Path)
}
