package cmd

import (
	"github.com/spf13/cobra"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/audit"
	"github.com/firefly-engineering/fleetctl/internal/config"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
)

// positionalArgs accepts exactly the named positional arguments.
// The messages are recognized by the error handler as user mistakes.
func positionalArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return errors.New("Missing " + names[len(args)]).WithExitCode(errors.ExitUsage)
		}

		extra := args[len(names):]
		switch len(extra) {
		case 0:
			return nil
		case 1:
			return errors.New("Unexpected argument: " + shellquote.Join(extra...)).WithExitCode(errors.ExitUsage)
		default:
			return errors.New("Unexpected arguments: " + shellquote.Join(extra...)).WithExitCode(errors.ExitUsage)
		}
	}
}

// paths returns the configured paths.
func paths() *config.Paths {
	return app.Default.Paths
}

// history returns the session history of the configured paths.
func history() *audit.Logger {
	return audit.NewLogger(paths().HistoryDir)
}

// recordEvent appends to the current profile's history. Failures are only
// logged; history is informational.
func recordEvent(eventType audit.EventType, details string) {
	if err := history().LogEvent(eventType, profile, details); err != nil {
		logging.Debug("failed to record session event", "type", eventType, "error", err)
	}
}
