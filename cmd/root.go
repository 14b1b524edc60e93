package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/config"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	profile    string
)

var rootCmd = &cobra.Command{
	Use:   "fleetctl",
	Short: "Fleet device management CLI",
	Long: `fleetctl manages fleet sessions and checks the local environment.

Errors the user can fix are explained and exit with a dedicated code.
Anything else is reported to the crash reporter when one is configured.`,
	Args:          positionalArgs(),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if err := config.ValidateProfileName(profile); err != nil {
			return errors.Usage(err)
		}
		return app.Default.ConfigErr
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the command line. Errors are returned unprinted; the caller
// hands them to the error handler.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", config.DefaultProfile, "Session profile to use")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Usage(err)
	})
}
