package cmd

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/fleetctl/internal/app"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/logging"
	"github.com/firefly-engineering/fleetctl/internal/system"
)

const doctorTimeout = 10 * time.Second

// probeFileName is written and removed to check the config directory.
const probeFileName = ".fleetctl-doctor"

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that fleetctl can run on this machine",
	Long: `Check the local environment:
  - git is installed
  - the configuration directory is writable
  - crash reporting and session status`,
	Args: positionalArgs(),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a := app.Default
	out := cmd.OutOrStdout()

	gitPath, err := a.Executor.LookPath("git")
	if err != nil {
		return errors.MarkExpected(err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
	defer cancel()

	version, err := a.Executor.Execute(ctx, gitPath, "--version")
	if err != nil {
		return errors.Wrap("git --version failed", err)
	}
	logging.UserSuccess(out, "%s (%s)", strings.TrimSpace(string(version)), gitPath)

	if err := checkWritable(a.FS, a.Paths.ConfigDir); err != nil {
		return err
	}
	logging.UserSuccess(out, "Config directory %s is writable", shellquote.Join(a.Paths.ConfigDir))

	if a.Reporter != nil && a.Config.Report.DSN != "" {
		logging.UserSuccess(out, "Crash reporting enabled (%s)", a.Config.Report.Environment)
	} else {
		logging.UserInfo(out, "Crash reporting disabled")
	}

	printSessionStatus(out, a)
	return nil
}

// checkWritable creates dir if needed and writes a probe file into it.
func checkWritable(fs system.FileSystem, dir string) error {
	probe := filepath.Join(dir, probeFileName)

	if err := fs.MkdirAll(dir, 0700); err != nil {
		return wrapWriteError(err)
	}
	if err := fs.WriteFile(probe, nil, 0600); err != nil {
		return wrapWriteError(err)
	}
	if err := fs.Remove(probe); err != nil {
		return wrapWriteError(err)
	}
	return nil
}

func wrapWriteError(err error) error {
	switch errors.CodeOf(err) {
	case errors.CodePermission, errors.CodeAccess:
		return errors.InsufficientPrivileges(err)
	}
	return errors.Wrap("config directory check failed", err)
}

func printSessionStatus(w io.Writer, a *app.App) {
	_, info, err := a.Sessions().Load(profile)
	switch {
	case err == nil && info.Subject != "":
		logging.UserSuccess(w, "Logged in as %s (profile %s)", info.Subject, profile)
	case err == nil:
		logging.UserSuccess(w, "Logged in (profile %s)", profile)
	case errors.InstanceOf(err, errors.KindExpected):
		logging.UserWarning(w, "%s", errors.NewInterpreter().Interpret(err))
	default:
		logging.UserWarning(w, "Session check failed: %v", err)
	}
}
