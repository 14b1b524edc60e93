package main

import (
	"os"
	"runtime/debug"

	"github.com/firefly-engineering/fleetctl/cmd"
	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/errors"
)

func main() {
	os.Exit(run())
}

// run executes the command line and returns the process exit code.
// Unexpected errors make the handler exit on its own after reporting.
func run() (code int) {
	h := app.Default.ErrorHandler()

	defer func() {
		if r := recover(); r != nil {
			h.Handle(errors.Recovered(r, debug.Stack()))
			code = h.ExitCode()
		}
	}()

	if err := cmd.Execute(); err != nil {
		h.Handle(err)
		return h.ExitCode()
	}
	return errors.ExitSuccess
}
