package hap

import (
	"fmt"
	"os/user"
	"strconv"

	"github.com/hapless-cli/hapless/internal/statedir"
)

// Owner returns the login name of the hap directory's owning UID, or a
// "uid:N" fallback if the UID can't be resolved to a name.
func (h *Hap) Owner() string {
	uid, err := statedir.OwnerUID(h.Path)
	if err != nil {
		return "unknown"
	}
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return fmt.Sprintf("uid:%d", uid)
	}
	return u.Username
}

// AccessibleTo reports whether the current process's user may mutate
// this hap (statedir.IsAccessible applied to this hap's directory).
func (h *Hap) AccessibleTo() bool {
	return statedir.IsAccessible(h.Path)
}
