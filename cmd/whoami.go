package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/audit"
	"github.com/firefly-engineering/fleetctl/internal/errors"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  positionalArgs(),
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	_, info, err := app.Default.Sessions().Load(profile)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeExpiredToken {
			recordEvent(audit.EventExpired, "")
		}
		return err
	}

	out := cmd.OutOrStdout()
	subject := info.Subject
	if subject == "" {
		subject = "(unknown)"
	}
	fmt.Fprintf(out, "Profile: %s\n", profile)
	fmt.Fprintf(out, "Subject: %s\n", subject)
	if info.ExpiresAt.IsZero() {
		fmt.Fprintln(out, "Expires: never")
	} else {
		fmt.Fprintf(out, "Expires: %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	if last, err := history().Last(profile, audit.EventLogin); err == nil && last != nil {
		fmt.Fprintf(out, "Logged in: %s\n", last.Timestamp.Format(time.RFC3339))
	}
	return nil
}
