package statedir

import (
	"os"
	"syscall"
	"time"
)

func timeNow() time.Time { return time.Now() }

// unixAccessible checks F_OK|R_OK|W_OK|X_OK for the current user. On
// POSIX this is a thin wrapper around syscall.Access; os.Stat's mode
// bits alone can't tell us whether *we* specifically have access (ACLs,
// other-bit mismatches).
func unixAccessible(path string, _ os.FileInfo) bool {
	// access(2) mode bits; the syscall package does not export R_OK/W_OK/X_OK
	// on every platform.
	const fOK, rOK, wOK, xOK = 0x0, 0x4, 0x2, 0x1
	return syscall.Access(path, fOK|rOK|wOK|xOK) == nil
}

// OwnerUID returns the UID that owns path.
func OwnerUID(path string) (uint32, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, os.ErrInvalid
	}
	return st.Uid, nil
}
