package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/fleetctl/internal/config"
	"github.com/firefly-engineering/fleetctl/internal/errors"
	"github.com/firefly-engineering/fleetctl/internal/system"
)

type nopReporter struct{}

func (nopReporter) Report(error)             {}
func (nopReporter) Flush(time.Duration) bool { return true }

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	app := New(WithEnv(env(map[string]string{config.ConfigDirEnv: dir})))

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Paths.ConfigDir != dir {
		t.Errorf("ConfigDir = %q, want %q", app.Paths.ConfigDir, dir)
	}
	if app.ConfigErr != nil {
		t.Errorf("ConfigErr = %v, want nil for a missing config file", app.ConfigErr)
	}
	if app.Config.Report.Environment != config.DefaultEnvironment {
		t.Errorf("Environment = %q", app.Config.Report.Environment)
	}
	if app.Reporter == nil {
		t.Error("Reporter should default to a Sentry reporter")
	}
	if app.FS == nil || app.Executor == nil {
		t.Error("FS and Executor should default to OS implementations")
	}
}

func TestNew_WithPaths(t *testing.T) {
	customPaths := config.NewPaths(t.TempDir())

	app := New(WithPaths(customPaths), WithEnv(env(nil)))

	if app.Paths != customPaths {
		t.Error("WithPaths did not set custom paths")
	}
}

func TestNew_WithExecutor(t *testing.T) {
	mockExec := system.NewMockExecutor()

	app := New(WithExecutor(mockExec), WithPaths(config.NewPaths(t.TempDir())), WithEnv(env(nil)))

	if app.Executor != mockExec {
		t.Error("WithExecutor did not set executor")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	if err := os.WriteFile(paths.ConfigFile, []byte("debug = = true"), 0644); err != nil {
		t.Fatal(err)
	}

	app := New(WithPaths(paths), WithEnv(env(nil)), WithReporter(nopReporter{}))

	if app.ConfigErr == nil {
		t.Fatal("ConfigErr should be set for an invalid config file")
	}
	if errors.GetExitCode(app.ConfigErr) != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(app.ConfigErr), errors.ExitConfigError)
	}
	if !errors.InstanceOf(app.ConfigErr, errors.KindExpected) {
		t.Error("config errors should be expected")
	}
	if app.Config == nil || app.Config.Report.FlushTimeoutMS != config.DefaultFlushTimeout {
		t.Error("Config should fall back to defaults")
	}
}

func TestNew_InvalidDSNDisablesReporting(t *testing.T) {
	app := New(
		WithPaths(config.NewPaths(t.TempDir())),
		WithEnv(env(map[string]string{config.ReportDSNEnv: "not a dsn"})),
	)

	if app.Reporter != nil {
		t.Errorf("Reporter = %T, want nil for an invalid DSN", app.Reporter)
	}
}

func TestErrorHandler(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	content := "debug = true\n[report]\nflush_timeout_ms = 300\n"
	if err := os.WriteFile(filepath.Join(paths.ConfigDir, config.ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	app := New(WithPaths(paths), WithEnv(env(nil)), WithReporter(nopReporter{}), WithStderr(&stderr))
	h := app.ErrorHandler()

	if !h.Debug {
		t.Error("Debug should follow the config file")
	}
	if h.FlushTimeout != 300*time.Millisecond {
		t.Errorf("FlushTimeout = %v, want 300ms", h.FlushTimeout)
	}
	if h.Reporter == nil {
		t.Error("Reporter should be set")
	}

	h.Handle(errors.Expected("nothing to do"))
	if !strings.Contains(stderr.String(), "nothing to do") {
		t.Errorf("stderr = %q, want the message", stderr.String())
	}
}

func TestErrorHandler_DebugFromEnv(t *testing.T) {
	app := New(
		WithPaths(config.NewPaths(t.TempDir())),
		WithEnv(env(map[string]string{config.DebugEnv: "1"})),
		WithReporter(nopReporter{}),
	)

	if !app.ErrorHandler().Debug {
		t.Error("DEBUG should enable stack traces")
	}
}

func TestSessions(t *testing.T) {
	mockFS := system.NewMockFS()
	app := New(WithPaths(config.NewPaths("/cfg")), WithConfig(config.Default()), WithFS(mockFS), WithEnv(env(nil)), WithReporter(nopReporter{}))

	_, _, err := app.Sessions().Load(config.DefaultProfile)
	if !errors.InstanceOf(err, errors.KindNotLoggedIn) {
		t.Errorf("Load() error = %v, want NotLoggedIn", err)
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer SetDefault(original)

	custom := New(WithPaths(config.NewPaths(t.TempDir())), WithEnv(env(nil)), WithReporter(nopReporter{}))
	SetDefault(custom)

	if Default != custom {
		t.Error("SetDefault did not set the default app")
	}
}
