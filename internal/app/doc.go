// Package app provides the application context for fleetctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths     *config.Paths          // Config and session locations
//	    Config    *config.Config         // Loaded config.toml plus env overrides
//	    ConfigErr error                  // Why Config fell back to defaults
//	    FS        system.FileSystem      // File access for sessions
//	    Executor  system.CommandExecutor // External tools (git)
//	    Reporter  errors.Reporter        // Crash reporting
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.NewPaths(t.TempDir())),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithReporter(fakeReporter),
//	)
//
// # Error Handling
//
// ErrorHandler builds the top-level errors.Handler from the configuration:
// debug output, the crash reporter and its flush timeout, and an
// ErrorPrinter on Stderr.
package app
