package errors

import (
	"errors"
	"io/fs"
	"net"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// Error codes understood by the message table.
const (
	CodeIsDir          = "EISDIR"
	CodeNotExist       = "ENOENT"
	CodeNoGit          = "ENOGIT"
	CodePermission     = "EPERM"
	CodeAccess         = "EACCES"
	CodeTimedOut       = "ETIMEDOUT"
	CodeModuleNotFound = "MODULE_NOT_FOUND"
	CodeExpiredToken   = "FleetExpiredToken"
)

var errnoCodes = []struct {
	errno syscall.Errno
	code  string
}{
	{syscall.EISDIR, CodeIsDir},
	{syscall.ENOENT, CodeNotExist},
	{syscall.EPERM, CodePermission},
	{syscall.EACCES, CodeAccess},
	{syscall.ETIMEDOUT, CodeTimedOut},
}

// CodeOf returns the error code carried by or derived from err, or "" if
// there is none. An explicit Code on an *Error wins over anything derived
// from its cause.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	if fe := firstError(err, func(e *Error) bool { return e.Code != "" }); fe != nil {
		return fe.Code
	}

	var ee *exec.Error
	if errors.As(err, &ee) && errors.Is(ee.Err, exec.ErrNotFound) {
		if isGit(ee.Name) {
			return CodeNoGit
		}
		return CodeNotExist
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		for _, e := range errnoCodes {
			if errno == e.errno {
				return e.code
			}
		}
	}

	// Platform errnos without a table entry, such as ERROR_ACCESS_DENIED on
	// windows, still match the portable fs sentinels.
	switch {
	case errors.Is(err, fs.ErrPermission):
		return CodePermission
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotExist
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return CodeTimedOut
	}

	return ""
}

// PathOf returns the file path err refers to, or "".
func PathOf(err error) string {
	if fe := firstError(err, func(e *Error) bool { return e.Path != "" }); fe != nil {
		return fe.Path
	}

	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Path
	}

	var ee *exec.Error
	if errors.As(err, &ee) {
		return ee.Name
	}

	return ""
}

// firstError returns the first *Error in err's chain accepted by match.
// Every *Error is checked, not just the outermost.
func firstError(err error, match func(*Error) bool) *Error {
	for ; err != nil; err = errors.Unwrap(err) {
		fe, ok := err.(*Error)
		if !ok {
			continue
		}
		if fe == nil {
			return nil
		}
		if match(fe) {
			return fe
		}
	}
	return nil
}

func isGit(name string) bool {
	base := strings.TrimSuffix(filepath.Base(name), ".exe")
	return base == "git"
}

type stackError struct {
	err   error
	stack string
}

func (e *stackError) Error() string { return e.err.Error() }
func (e *stackError) Unwrap() error { return e.err }
func (e *stackError) Stack() string { return e.stack }

// WithStack attaches a stack trace to err. The trace is only printed when
// debug output is enabled.
func WithStack(err error, stack []byte) error {
	if err == nil {
		return nil
	}
	return &stackError{err: err, stack: strings.TrimSpace(string(stack))}
}

// StackOf returns the stack trace attached to err, or "".
func StackOf(err error) string {
	var s interface{ Stack() string }
	if errors.As(err, &s) {
		return s.Stack()
	}
	return ""
}

// Recovered prepares a value returned by recover() for Handler.Handle.
// Errors get the stack attached; other values are returned as-is.
func Recovered(v any, stack []byte) any {
	if err, ok := v.(error); ok {
		return WithStack(err, stack)
	}
	return v
}
