package errors

import (
	"errors"
	"fmt"
)

// Exit codes for fleetctl
const (
	ExitSuccess                = 0
	ExitGeneralError           = 1
	ExitUsage                  = 2
	ExitNotLoggedIn            = 3
	ExitInsufficientPrivileges = 4
	ExitConfigError            = 5
)

// Kind tags an Error for classification. Kinds are compared by name so that
// errors built by another copy of this package still classify correctly.
type Kind string

const (
	// KindExpected marks errors that are shown to the user but never reported.
	KindExpected Kind = "ExpectedError"

	KindNotLoggedIn            Kind = "NotLoggedInError"
	KindInsufficientPrivileges Kind = "InsufficientPrivilegesError"
)

// parents maps a kind to the kind it specializes.
var parents = map[Kind]Kind{
	KindNotLoggedIn:            KindExpected,
	KindInsufficientPrivileges: KindExpected,
}

// Is reports whether k is target or one of its subkinds.
func (k Kind) Is(target Kind) bool {
	for cur := k; cur != ""; cur = parents[cur] {
		if cur == target {
			return true
		}
	}
	return false
}

// Error is the base error type for fleetctl
type Error struct {
	// Kind is empty for errors that should be treated as unexpected.
	Kind Kind

	// Code is an OS or runtime error code such as ENOENT.
	Code string

	// Path is the file the error refers to, if any.
	Path string

	Message string
	Cause   error

	exit    int
	hasExit bool
}

func (e *Error) Error() string {
	switch {
	case e.Message == "" && e.Cause != nil:
		return e.Cause.Error()
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorName returns the kind name, or "Error" for untagged errors.
func (e *Error) ErrorName() string {
	if e.Kind == "" {
		return "Error"
	}
	return string(e.Kind)
}

// ExitCode returns the exit code for this error, or -1 if it has none.
func (e *Error) ExitCode() int {
	if !e.hasExit {
		return -1
	}
	return e.exit
}

// WithExitCode sets the exit code and returns the error for chaining.
func (e *Error) WithExitCode(code int) *Error {
	e.exit = code
	e.hasExit = true
	return e
}

// New creates a new untagged Error
func New(message string) *Error {
	return &Error{Message: message}
}

// Wrap wraps an existing error with a message
func Wrap(message string, cause error) *Error {
	return &Error{Message: message, Cause: cause}
}

// WithCode creates an Error carrying an OS or runtime error code.
func WithCode(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Expected returns an error that is printed without being reported.
func Expected(message string) *Error {
	return &Error{Kind: KindExpected, Message: message}
}

// NotLoggedIn returns an error for commands that need a session.
func NotLoggedIn(message string) *Error {
	return (&Error{Kind: KindNotLoggedIn, Message: message}).WithExitCode(ExitNotLoggedIn)
}

// InsufficientPrivileges wraps a permission failure. The cause's code and
// path are kept so the message table still explains it.
func InsufficientPrivileges(cause error) *Error {
	e := &Error{
		Kind:  KindInsufficientPrivileges,
		Code:  CodeOf(cause),
		Path:  PathOf(cause),
		Cause: cause,
	}
	return e.WithExitCode(ExitInsufficientPrivileges)
}

// MarkExpected turns err into an expected error, keeping its code and path
// so the message table still explains it.
func MarkExpected(err error) *Error {
	return &Error{
		Kind:  KindExpected,
		Code:  CodeOf(err),
		Path:  PathOf(err),
		Cause: err,
	}
}

// Usage wraps a command-line parsing failure.
func Usage(cause error) *Error {
	return (&Error{Kind: KindExpected, Cause: cause}).WithExitCode(ExitUsage)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *Error {
	return (&Error{Kind: KindExpected, Message: message, Cause: cause}).WithExitCode(ExitConfigError)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if code, ok := exitCodeOf(err); ok {
		return code
	}
	return ExitGeneralError
}

// exitCodeOf returns the first non-negative exit code in err's chain.
// *exec.ExitError reports -1 while the process has not exited, so negative
// codes are skipped.
func exitCodeOf(err error) (int, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		if ec, ok := err.(interface{ ExitCode() int }); ok && ec.ExitCode() >= 0 {
			return ec.ExitCode(), true
		}
	}
	return 0, false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
