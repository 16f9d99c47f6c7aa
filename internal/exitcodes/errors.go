package exitcodes

import "fmt"

// ErrorWithCode is an error that carries an explicit exit code, so a
// single dispatcher at the top of main() can translate any returned
// error into the right process exit status without type-switching on
// every call site.
type ErrorWithCode struct {
	Code    int
	Message string
	Cause   error
}

func (e *ErrorWithCode) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrorWithCode) Unwrap() error { return e.Cause }

func newError(code int, message string) *ErrorWithCode {
	return &ErrorWithCode{Code: code, Message: message}
}

func newErrorf(code int, format string, args ...interface{}) *ErrorWithCode {
	return &ErrorWithCode{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Constructors below, one per distinct user-facing failure kind.

func NoSuchHap(alias string) *ErrorWithCode {
	return newErrorf(GeneralError, "No such hap: %s", alias)
}

func NotAccessible(owner string) *ErrorWithCode {
	return newErrorf(GeneralError, "Cannot manage hap launched by another user. Owner: %s", owner)
}

func NameCollision(name string) *ErrorWithCode {
	return newErrorf(GeneralError, "Hap with such name already exists: %s", name)
}

func NotRunning(hapRef string) *ErrorWithCode {
	return newErrorf(GeneralError, "Cannot pause. Hap %s is not running", hapRef)
}

func NotPaused(hapRef string) *ErrorWithCode {
	return newErrorf(GeneralError, "Cannot resume. Hap %s is not paused", hapRef)
}

func InvalidWorkdir() *ErrorWithCode {
	return newError(GeneralError, "Workdir should be a path to existing directory")
}

func InvalidSignal(code int) *ErrorWithCode {
	return newErrorf(UsageError, "%d is not a valid signal code", code)
}

func EmptyCommand() *ErrorWithCode {
	return newError(GeneralError, "You have to provide a command to run")
}

func StateInaccessible(path, user string) *ErrorWithCode {
	return newErrorf(GeneralError, "State directory %s is not accessible by user %s", path, user)
}

func BindFailed(cause error) *ErrorWithCode {
	return &ErrorWithCode{Code: GeneralError, Message: "launcher could not confirm the bound process is alive", Cause: cause}
}

func FastFailure() *ErrorWithCode {
	return newError(GeneralError, "hap exited too quickly")
}

func Usagef(format string, args ...interface{}) *ErrorWithCode {
	return newErrorf(UsageError, format, args...)
}
