package supervisor

import "syscall"

const (
	sigStop = int(syscall.SIGSTOP)
	sigCont = int(syscall.SIGCONT)
)

func signalPID(pid int, n int) error {
	if pid <= 0 {
		return nil
	}
	return syscall.Kill(pid, syscall.Signal(n))
}
