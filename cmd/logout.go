package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/audit"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session of the selected profile",
	Args:  positionalArgs(),
	RunE:  runLogout,
}

var logoutForget bool

func init() {
	logoutCmd.Flags().BoolVar(&logoutForget, "forget", false, "Also clear the profile's session history")
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	removed, err := app.Default.Sessions().Delete(profile)
	if err != nil {
		return err
	}

	if removed {
		recordEvent(audit.EventLogout, "")
		logging.UserSuccess(out, "Logged out (profile %s)", profile)
	} else {
		logging.UserInfo(out, "No session for profile %s", profile)
	}

	if logoutForget {
		if err := history().Remove(profile); err != nil {
			switch errors.CodeOf(err) {
			case errors.CodePermission, errors.CodeAccess:
				return errors.InsufficientPrivileges(err)
			}
			return errors.Wrap("failed to clear session history", err)
		}
		logging.UserSuccess(out, "Cleared session history (profile %s)", profile)
	}
	return nil
}
