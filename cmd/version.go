package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/fleetctl/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fleetctl version",
	Args:  positionalArgs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "fleetctl %s (%s/%s)\n", app.Version, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
