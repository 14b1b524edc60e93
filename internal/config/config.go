package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	AppName        = "fleetctl"
	ConfigFileName = "config.toml"
	DefaultProfile = "default"

	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "FLEETCTL_CONFIG_DIR"

	// DebugEnv enables stack traces in error output when set to any value.
	DebugEnv = "DEBUG"

	// ReportDSNEnv overrides report.dsn.
	ReportDSNEnv = "FLEETCTL_SENTRY_DSN"

	DefaultEnvironment  = "production"
	DefaultFlushTimeout = 1000 // milliseconds
)

// profileNameRegex validates profile names.
// Names must start with a lowercase letter or digit, followed by lowercase letters, digits, underscores, or hyphens.
var profileNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateProfileName checks if a session profile name is valid.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if !profileNameRegex.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// Config is the user configuration loaded from config.toml
type Config struct {
	Debug  bool         `toml:"debug"`
	Report ReportConfig `toml:"report"`
}

// ReportConfig configures crash reporting. An empty DSN disables delivery.
type ReportConfig struct {
	DSN            string `toml:"dsn"`
	Environment    string `toml:"environment"`
	FlushTimeoutMS int    `toml:"flush_timeout_ms"`
}

// FlushTimeout returns the bound on waiting for crash reports.
func (r ReportConfig) FlushTimeout() time.Duration {
	return time.Duration(r.FlushTimeoutMS) * time.Millisecond
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Environment:    DefaultEnvironment,
			FlushTimeoutMS: DefaultFlushTimeout,
		},
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Report.FlushTimeoutMS <= 0 {
		return fmt.Errorf("report.flush_timeout_ms must be positive, got %d", c.Report.FlushTimeoutMS)
	}
	return nil
}

// ApplyEnv overrides configuration values from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv(DebugEnv) != "" {
		c.Debug = true
	}
	if dsn := getenv(ReportDSNEnv); dsn != "" {
		c.Report.DSN = dsn
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir   string
	ConfigFile  string
	SessionsDir string
	HistoryDir  string
}

// NewPaths returns the paths rooted at configDir.
func NewPaths(configDir string) *Paths {
	return &Paths{
		ConfigDir:   configDir,
		ConfigFile:  filepath.Join(configDir, ConfigFileName),
		SessionsDir: filepath.Join(configDir, "sessions"),
		HistoryDir:  filepath.Join(configDir, "history"),
	}
}

// DefaultPaths returns the default path configuration: $FLEETCTL_CONFIG_DIR,
// or fleetctl under the user configuration directory.
func DefaultPaths(getenv func(string) string) (*Paths, error) {
	if dir := getenv(ConfigDirEnv); dir != "" {
		return NewPaths(dir), nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return NewPaths(filepath.Join(base, AppName)), nil
}

// SessionFile returns the token file for profile. The result always stays
// inside SessionsDir.
func (p *Paths) SessionFile(profile string) (string, error) {
	if err := ValidateProfileName(profile); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(p.SessionsDir, profile+".token")
}
