// Package telemetry reports unexpected fleetctl errors to Sentry.
package telemetry

import (
	"fmt"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/fleetctl/internal/logging"
)

// Options configures a SentryReporter.
type Options struct {
	// DSN of the Sentry project. Empty disables delivery; reports are
	// still processed so BeforeSend hooks run.
	DSN         string
	Environment string
	Release     string

	// Args is the command line, attached as the "command" tag.
	Args []string

	// BeforeSend can inspect or drop events before delivery.
	BeforeSend func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event
}

// SentryReporter implements errors.Reporter on a dedicated Sentry hub.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter creates a reporter. It does not touch the global hub.
func NewSentryReporter(opts Options) (*SentryReporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		BeforeSend:  opts.BeforeSend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create crash reporter: %w", err)
	}

	hub := sentry.NewHub(client, sentry.NewScope())
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		if len(opts.Args) > 0 {
			scope.SetTag("command", shellquote.Join(opts.Args...))
		}
	})

	logging.Debug("crash reporter configured", "enabled", opts.DSN != "", "environment", opts.Environment)
	return &SentryReporter{hub: hub}, nil
}

// Report captures err.
func (r *SentryReporter) Report(err error) {
	id := r.hub.CaptureException(err)
	if id != nil {
		logging.Debug("crash report captured", "event_id", string(*id))
	}
}

// Flush waits up to timeout for captured reports to be sent.
func (r *SentryReporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}
