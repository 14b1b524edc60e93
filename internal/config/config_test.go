package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.Report.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", cfg.Report.Environment, DefaultEnvironment)
	}
	if cfg.Report.FlushTimeout() != time.Second {
		t.Errorf("FlushTimeout() = %v, want 1s", cfg.Report.FlushTimeout())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
debug = true

[report]
dsn = "https://key@o0.ingest.example.com/1"
flush_timeout_ms = 2500
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Report.DSN != "https://key@o0.ingest.example.com/1" {
		t.Errorf("DSN = %q", cfg.Report.DSN)
	}
	if cfg.Report.FlushTimeout() != 2500*time.Millisecond {
		t.Errorf("FlushTimeout() = %v, want 2.5s", cfg.Report.FlushTimeout())
	}
	// Not set in the file, keeps the default
	if cfg.Report.Environment != DefaultEnvironment {
		t.Errorf("Environment = %q, want %q", cfg.Report.Environment, DefaultEnvironment)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "debug = = true", "failed to parse config"},
		{"wrong type", "debug = \"yes\"", "failed to parse config"},
		{"bad timeout", "[report]\nflush_timeout_ms = 0", "flush_timeout_ms must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load() of a directory should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(env(map[string]string{
		DebugEnv:     "1",
		ReportDSNEnv: "https://env@o0.ingest.example.com/2",
	}))

	if !cfg.Debug {
		t.Error("DEBUG should enable debug")
	}
	if cfg.Report.DSN != "https://env@o0.ingest.example.com/2" {
		t.Errorf("DSN = %q", cfg.Report.DSN)
	}

	cfg = Default()
	cfg.ApplyEnv(env(nil))
	if cfg.Debug {
		t.Error("empty DEBUG should not enable debug")
	}
}

func TestDefaultPaths_Env(t *testing.T) {
	paths, err := DefaultPaths(env(map[string]string{ConfigDirEnv: "/custom/fleet"}))
	if err != nil {
		t.Fatalf("DefaultPaths() error = %v", err)
	}

	if paths.ConfigDir != "/custom/fleet" {
		t.Errorf("ConfigDir = %q", paths.ConfigDir)
	}
	if paths.ConfigFile != filepath.Join("/custom/fleet", ConfigFileName) {
		t.Errorf("ConfigFile = %q", paths.ConfigFile)
	}
	if paths.SessionsDir != filepath.Join("/custom/fleet", "sessions") {
		t.Errorf("SessionsDir = %q", paths.SessionsDir)
	}
	if paths.HistoryDir != filepath.Join("/custom/fleet", "history") {
		t.Errorf("HistoryDir = %q", paths.HistoryDir)
	}
}

func TestSessionFile(t *testing.T) {
	paths := NewPaths(t.TempDir())

	got, err := paths.SessionFile("work")
	if err != nil {
		t.Fatalf("SessionFile() error = %v", err)
	}
	if got != filepath.Join(paths.SessionsDir, "work.token") {
		t.Errorf("SessionFile() = %q", got)
	}
}

func TestSessionFile_InvalidProfile(t *testing.T) {
	paths := NewPaths(t.TempDir())

	for _, profile := range []string{"", "../escape", "a/b", "UPPER", "-dash"} {
		t.Run(profile, func(t *testing.T) {
			if _, err := paths.SessionFile(profile); err == nil {
				t.Errorf("SessionFile(%q) should fail", profile)
			}
		})
	}
}

func TestValidateProfileName(t *testing.T) {
	valid := []string{"default", "work", "a", "prod-eu_1", strings.Repeat("a", 63)}
	for _, name := range valid {
		if err := ValidateProfileName(name); err != nil {
			t.Errorf("ValidateProfileName(%q) error = %v", name, err)
		}
	}

	if err := ValidateProfileName(strings.Repeat("a", 64)); err == nil {
		t.Error("64-character name should be rejected")
	}
}
