package errors

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"time"

	"github.com/firefly-engineering/fleetctl/internal/logging"
)

// DefaultFlushTimeout bounds the wait for crash reports to be delivered.
const DefaultFlushTimeout = time.Second

// Printer displays error messages to the user.
type Printer interface {
	Print(message string)
}

// Reporter sends unexpected errors to a crash-reporting service.
type Reporter interface {
	Report(err error)

	// Flush waits up to timeout for pending reports and reports whether
	// they were all delivered.
	Flush(timeout time.Duration) bool
}

// expectedMessages recognize errors raised outside this package that are
// user mistakes rather than defects. They are matched against the
// interpreted message, so a change in upstream wording silently turns the
// error into a reported one.
var expectedMessages = []*regexp.Regexp{
	regexp.MustCompile(`^FleetApplicationNotFound:`), // fleet API
	regexp.MustCompile(`^FleetDeviceNotFound:`),      // fleet API
	regexp.MustCompile(`^Missing \w+$`),              // positional argument validation
	regexp.MustCompile(`^Unexpected arguments?:`),    // positional argument validation
}

func isExpectedMessage(message string) bool {
	for _, re := range expectedMessages {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// Handler is the last stop for errors that reach the top of the program.
// It prints them, sets the exit code and, for unexpected errors, reports
// them and terminates the process.
type Handler struct {
	Printer     Printer
	Reporter    Reporter
	Interpreter *Interpreter

	// Debug appends stack traces to printed messages.
	Debug bool

	FlushTimeout time.Duration

	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)

	exitCode int
}

// NewHandler creates a Handler for the running platform.
func NewHandler(printer Printer, reporter Reporter) *Handler {
	return &Handler{
		Printer:      printer,
		Reporter:     reporter,
		Interpreter:  NewInterpreter(),
		FlushTimeout: DefaultFlushTimeout,
		Exit:         os.Exit,
	}
}

// ExitCode returns the exit code decided by the last Handle call.
func (h *Handler) ExitCode() int {
	return h.exitCode
}

// Handle processes a value that reached the top of the program: an error
// returned by a command, or a value recovered from a panic.
func (h *Handler) Handle(v any) {
	err, isErr := v.(error)
	if isErr && isNilError(err) {
		// A typed nil such as (*Error)(nil) cannot be inspected.
		err, isErr = nil, false
	}

	h.exitCode = h.resolveExitCode(err)

	if !isErr || err == nil {
		h.Printer.Print(fmt.Sprint(v))
		return
	}

	message := h.interpreter().Interpret(err)
	display := message
	if stack := StackOf(err); h.Debug && stack != "" {
		display += "\n" + stack
	}
	h.Printer.Print(display)

	if InstanceOf(err, KindExpected) || isExpectedMessage(message) {
		logging.Debug("expected error", "exit_code", h.exitCode)
		return
	}

	logging.Debug("reporting unexpected error", "error", err, "exit_code", h.exitCode)
	if h.Reporter != nil {
		h.Reporter.Report(err)
		if !h.Reporter.Flush(h.flushTimeout()) {
			logging.Debug("crash report flush timed out", "timeout", h.flushTimeout())
		}
	}
	h.exit(h.exitCode)
}

func (h *Handler) resolveExitCode(err error) int {
	if code, ok := exitCodeOf(err); ok {
		return code
	}
	if h.exitCode != 0 {
		return h.exitCode
	}
	return ExitGeneralError
}

func (h *Handler) interpreter() *Interpreter {
	if h.Interpreter == nil {
		h.Interpreter = NewInterpreter()
	}
	return h.Interpreter
}

func (h *Handler) flushTimeout() time.Duration {
	if h.FlushTimeout <= 0 {
		return DefaultFlushTimeout
	}
	return h.FlushTimeout
}

func (h *Handler) exit(code int) {
	if h.Exit == nil {
		os.Exit(code)
	}
	h.Exit(code)
}

func isNilError(err error) bool {
	if err == nil {
		return true
	}
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
