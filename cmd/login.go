package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/audit"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
)

var loginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Start a session with an API token",
	Long: `Store an API session token for the selected profile.

Pass "-" to read the token from standard input.`,
	Args: positionalArgs("token"),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	token := args[0]
	if token == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap("failed to read token", err)
		}
		token = string(data)
	}
	if strings.TrimSpace(token) == "" {
		return errors.Expected("Missing token")
	}

	info, err := app.Default.Sessions().Save(profile, token)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeExpiredToken {
			recordEvent(audit.EventExpired, "")
		}
		return err
	}
	recordEvent(audit.EventLogin, info.Subject)

	out := cmd.OutOrStdout()
	if info.Subject != "" {
		logging.UserSuccess(out, "Logged in as %s (profile %s)", info.Subject, profile)
	} else {
		logging.UserSuccess(out, "Logged in (profile %s)", profile)
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "  Session expires %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
