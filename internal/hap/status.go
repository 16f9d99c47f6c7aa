package hap

import (
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// reuseEpsilon bounds the slop allowed between a pid file's mtime and the
// live process's reported create_time before we discard the match as a
// PID-reuse collision. Process creation and our own write of pid_file
// race by at most a few hundred milliseconds in practice.
const reuseEpsilon = 2 * time.Second

// liveProcess returns the process bound to pid, guarding against PID
// reuse: if the running process's create time disagrees with the
// pid_file's mtime by more than reuseEpsilon, it is a different process
// that happens to reuse the old pid, and we report "not found".
func liveProcess(pid int, pidFileMtime time.Time) *process.Process {
	if pid <= 0 {
		return nil
	}
	exists, err := process.PidExists(int32(pid))
	if err != nil || !exists {
		return nil
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil
	}
	if pidFileMtime.IsZero() {
		return proc
	}
	createMs, err := proc.CreateTime()
	if err != nil {
		return proc
	}
	created := time.UnixMilli(createMs)
	if diff := created.Sub(pidFileMtime); diff > reuseEpsilon || diff < -reuseEpsilon {
		return nil
	}
	return proc
}

// isStopped reports whether the process's primary status is "stopped"
// (SIGSTOP/paused), as opposed to any other runnable/sleeping state.
func isStopped(proc *process.Process) bool {
	statuses, err := proc.Status()
	if err != nil || len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if s == process.Stop {
			return true
		}
	}
	return false
}

// Status derives the hap's current status from three independent
// on-disk/process signals:
//
//	pid absent, rc absent                -> UNBOUND
//	pid present, rc absent, no process   -> FAILED (launcher died before rc)
//	pid present, rc absent, process stop -> PAUSED
//	pid present, rc absent, process live -> RUNNING
//	rc present (any pid state)           -> SUCCESS or FAILED by rc value
func (h *Hap) Status() Status {
	pid, hasPID := h.PID()
	rc, hasRC := h.ReturnCode()

	if hasRC {
		if rc == 0 {
			return Success
		}
		return Failed
	}
	if !hasPID {
		return Unbound
	}

	proc := liveProcess(pid, h.StartTime())
	if proc == nil {
		return Failed
	}
	if isStopped(proc) {
		return Paused
	}
	return Running
}

// Active reports whether status is RUNNING or PAUSED.
func (h *Hap) Active() bool {
	switch h.Status() {
	case Running, Paused:
		return true
	default:
		return false
	}
}

// Process returns a fresh process handle for the hap's bound pid, or nil
// if it is not currently active. Callers that poll for termination after
// a kill must call Process again each iteration rather than caching the
// result: a process handle observed once can go stale the moment the
// pid exits or is reused.
func (h *Hap) Process() *process.Process {
	pid, ok := h.PID()
	if !ok {
		return nil
	}
	return liveProcess(pid, h.StartTime())
}

// Runtime returns the hap's running or total duration: wall time since
// create_time while active, else the delta between rc_file and
// pid_file mtimes, else zero with ok=false (the status table then shows
// "-" and the detail panel omits the runtime line).
func (h *Hap) Runtime() (time.Duration, bool) {
	if proc := h.Process(); proc != nil {
		createMs, err := proc.CreateTime()
		if err != nil {
			return 0, false
		}
		return time.Since(time.UnixMilli(createMs)), true
	}
	start, end := h.StartTime(), h.EndTime()
	if start.IsZero() || end.IsZero() {
		return 0, false
	}
	return end.Sub(start), true
}

// Env returns the environment of the live process when active, else the
// persisted env_file snapshot, else nil.
func (h *Hap) Env() map[string]string {
	if proc := h.Process(); proc != nil {
		lines, err := proc.Environ()
		if err == nil {
			out := make(map[string]string, len(lines))
			for _, kv := range lines {
				k, v, found := cutEnv(kv)
				if found {
					out[k] = v
				}
			}
			return out
		}
	}
	return h.EnvFile()
}

func cutEnv(kv string) (key, value string, ok bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}
