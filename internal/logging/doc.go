// Package logging provides logging utilities for fleetctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("loading session", "profile", profile)
//	logging.Warn("config file ignored", "path", path)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo(out, "No session for profile %s", profile)
//	logging.UserSuccess(out, "Logged in as %s", subject)
//	logging.UserWarning(out, "Session check failed: %v", err)
//
// Errors are not printed this way; they go through ErrorPrinter.
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error, ErrorPrinter only)
//
// # Error Printer
//
// ErrorPrinter is the printer used by the top-level error handler. It
// renders the first line of a message as a bold red headline and the rest
// (explanations, stack traces) in red underneath.
package logging
