// Package app provides the application context for fleetctl.
// It allows dependency injection for testing.
package app

import (
	"io"
	"os"

	"github.com/firefly-engineering/fleetctl/internal/config"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
	"github.com/firefly-engineering/fleetctl/internal/session"
	"github.com/firefly-engineering/fleetctl/internal/system"
	"github.com/firefly-engineering/fleetctl/internal/telemetry"
)

// Version is set at build time.
var Version = "dev"

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Config is the loaded user configuration
	Config *config.Config

	// ConfigErr is set when the configuration could not be loaded.
	// Defaults are used so errors can still be handled; commands
	// report it before doing any work.
	ConfigErr error

	FS       system.FileSystem
	Executor system.CommandExecutor
	Reporter errors.Reporter
	Stderr   io.Writer

	getenv func(string) string
	args   []string
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a custom configuration instead of loading one.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithFS sets a custom filesystem
func WithFS(fs system.FileSystem) Option {
	return func(a *App) {
		a.FS = fs
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithReporter sets a custom crash reporter
func WithReporter(r errors.Reporter) Option {
	return func(a *App) {
		a.Reporter = r
	}
}

// WithStderr sets where error messages are printed
func WithStderr(w io.Writer) Option {
	return func(a *App) {
		a.Stderr = w
	}
}

// WithEnv sets the environment lookup function
func WithEnv(getenv func(string) string) Option {
	return func(a *App) {
		a.getenv = getenv
	}
}

// WithArgs sets the command line attached to crash reports
func WithArgs(args []string) Option {
	return func(a *App) {
		a.args = args
	}
}

// New creates a new App with the given options. It never fails: problems
// loading the configuration are kept in ConfigErr.
func New(opts ...Option) *App {
	app := &App{
		getenv: os.Getenv,
		args:   os.Args,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.FS == nil {
		app.FS = system.DefaultFS()
	}
	if app.Executor == nil {
		app.Executor = system.DefaultExecutor()
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}

	if app.Paths == nil {
		paths, err := config.DefaultPaths(app.getenv)
		if err != nil {
			app.ConfigErr = errors.ConfigError("Could not determine the configuration directory", err)
			paths = config.NewPaths(config.AppName)
		}
		app.Paths = paths
	}

	if app.Config == nil {
		cfg, err := config.Load(app.Paths.ConfigFile)
		if err != nil {
			app.ConfigErr = errors.ConfigError("Could not load "+app.Paths.ConfigFile, err)
			cfg = config.Default()
		}
		app.Config = cfg
	}
	app.Config.ApplyEnv(app.getenv)

	if app.Reporter == nil {
		reporter, err := telemetry.NewSentryReporter(telemetry.Options{
			DSN:         app.Config.Report.DSN,
			Environment: app.Config.Report.Environment,
			Release:     config.AppName + "@" + Version,
			Args:        app.args,
		})
		if err != nil {
			// Errors are still printed without a reporter.
			logging.Warn("crash reporting disabled", "error", err)
		} else {
			app.Reporter = reporter
		}
	}

	return app
}

// Sessions returns the session store
func (a *App) Sessions() *session.Store {
	return session.NewStore(a.Paths, a.FS)
}

// ErrorHandler returns the top-level error handler configured for this app
func (a *App) ErrorHandler() *errors.Handler {
	h := errors.NewHandler(logging.NewErrorPrinter(a.Stderr), a.Reporter)
	h.Debug = a.Config.Debug
	h.FlushTimeout = a.Config.Report.FlushTimeout()
	return h
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
