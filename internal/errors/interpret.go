package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// bindingsPrefix starts the message of a native component that failed to
// load. It is reported as a missing module.
const bindingsPrefix = "Could not locate the bindings file."

// Interpreter turns errors into user-facing messages. GOOS and GOARCH select
// platform-specific wording.
type Interpreter struct {
	GOOS   string
	GOARCH string
}

// NewInterpreter returns an Interpreter for the running platform.
func NewInterpreter() *Interpreter {
	return &Interpreter{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}
}

// Interpret returns the message to show for err.
//
// Errors whose message starts with the bindings failure text are treated as
// MODULE_NOT_FOUND; when err is an *Error its Code is rewritten in place.
func (in *Interpreter) Interpret(err error) string {
	if err == nil {
		return ""
	}

	message := err.Error()
	code := CodeOf(err)

	if strings.HasPrefix(message, bindingsPrefix) {
		code = CodeModuleNotFound
		var fe *Error
		if errors.As(err, &fe) {
			fe.Code = code
		}
	}

	if code != "" {
		if fn, ok := messages[code]; ok {
			if msg := fn(in, err); msg != "" {
				return msg
			}
		}
		if message != "" {
			return fmt.Sprintf("%s: %s", code, message)
		}
	}

	return message
}

type messageFunc func(in *Interpreter, err error) string

var messages = map[string]messageFunc{
	CodeIsDir: func(_ *Interpreter, err error) string {
		return "File is a directory: " + PathOf(err)
	},

	CodeNotExist: func(_ *Interpreter, err error) string {
		return "No such file or directory: " + PathOf(err)
	},

	CodeNoGit: func(*Interpreter, error) string {
		return "Git is not installed on this system.\n" +
			"Head over to http://git-scm.com to install it and run this command again."
	},

	CodePermission: permissionMessage,

	CodeAccess: permissionMessage,

	CodeTimedOut: func(*Interpreter, error) string {
		return "Oops something went wrong, please check your connection and try again."
	},

	CodeModuleNotFound: func(in *Interpreter, _ error) string {
		var b strings.Builder
		b.WriteString("Part of the CLI could not be loaded. This typically means your CLI install is in a broken state.\n")
		if in.GOARCH == "amd64" {
			b.WriteString("You can normally fix this by uninstalling and reinstalling the CLI.")
		} else {
			fmt.Fprintf(&b, "You're using an unsupported architecture (%s), so this is typically caused by missing native components.\n", in.GOARCH)
			b.WriteString("Reinstalling may help, but pay attention to errors in native build steps en route.")
		}
		return b.String()
	},

	CodeExpiredToken: func(*Interpreter, error) string {
		return "Looks like your session token is expired.\n" +
			"Please try logging in again with:\n" +
			"\t$ fleetctl login"
	},
}

func permissionMessage(in *Interpreter, _ error) string {
	hint := "Try running this command again prefixing it with `sudo`."
	if in.GOOS == "windows" {
		hint = "Run a new Command Prompt as administrator and try running this command again."
	}
	return "You don't have sufficient privileges to run this operation.\n" +
		hint + "\n\n" +
		"If this is not the case, and you're trying to write to removable media, check that the write lock is not set."
}
