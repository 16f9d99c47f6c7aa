// Package exitcodes centralizes the CLI's exit-code contract: typed
// errors that carry an explicit code, and a dispatcher that main() uses
// to translate any returned error into os.Exit's argument.
package exitcodes

import (
	"errors"
	"os"
)

// hapless's three-tier exit contract: success, an expected user-facing
// failure, or a usage error.
const (
	Success      = 0
	GeneralError = 1
	UsageError   = 2
)

// Exit terminates the program with the given code.
func Exit(code int) { os.Exit(code) }

// CodeForError returns the exit code for err: explicit code if it is (or
// wraps) an *ErrorWithCode, else GeneralError. A nil error is Success.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}
	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code
	}
	return GeneralError
}
