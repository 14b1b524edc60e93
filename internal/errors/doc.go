// Package errors provides typed errors and the top-level error handler for
// fleetctl.
//
// # Error Type
//
// Error is the single error type. It carries an optional Kind, an OS or
// runtime error code, the path the failure refers to, and an exit code:
//
//	type Error struct {
//	    Kind    Kind   // ExpectedError, NotLoggedInError, ...
//	    Code    string // ENOENT, EPERM, FleetExpiredToken, ...
//	    Path    string
//	    Message string
//	    Cause   error
//	}
//
// # Kinds
//
// Errors of KindExpected and its subkinds are user mistakes. They are printed
// but never reported:
//
//	errors.Expected("no devices matched")
//	errors.NotLoggedIn("not logged in")
//	errors.InsufficientPrivileges(err)
//
// Use InstanceOf to classify; it also matches errors created by another copy
// of this package by comparing kind names.
//
// # Interpreting
//
// Interpreter.Interpret maps error codes to explanations. Codes come from
// Error.Code or are derived from the cause (see CodeOf):
//
//	EISDIR, ENOENT      *fs.PathError with syscall.EISDIR / ENOENT
//	ENOGIT              exec.ErrNotFound for git
//	EPERM, EACCES       syscall.EPERM / EACCES
//	ETIMEDOUT           net.Error with Timeout() == true
//	MODULE_NOT_FOUND    "Could not locate the bindings file." messages
//	FleetExpiredToken   set by the session package
//
// # Handling
//
// Handler.Handle is called once by main with whatever reached the top:
//
//	h := errors.NewHandler(printer, reporter)
//	if err := cmd.Execute(); err != nil {
//	    h.Handle(err)
//	}
//	os.Exit(h.ExitCode())
//
// Expected errors and non-error panic values are printed and left to exit
// normally. Anything else is reported, flushed for at most FlushTimeout,
// and the process is terminated.
package errors
