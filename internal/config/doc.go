// Package config provides configuration loading and paths for fleetctl.
//
// # Configuration File
//
// Settings live in config.toml under the configuration directory
// ($FLEETCTL_CONFIG_DIR, or fleetctl under os.UserConfigDir):
//
//	debug = false
//
//	[report]
//	dsn = ""                    # crash reporting; empty disables delivery
//	environment = "production"
//	flush_timeout_ms = 1000     # bound on waiting for reports before exit
//
// A missing file is not an error. Keys absent from the file keep their
// defaults.
//
// # Environment
//
//	DEBUG                any non-empty value enables stack traces
//	FLEETCTL_SENTRY_DSN  overrides report.dsn
//
// # Sessions
//
// Session tokens are stored per profile in sessions/<profile>.token.
// Paths.SessionFile validates the profile name and resolves the file with
// securejoin so it cannot escape the sessions directory.
package config
