// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
)

// FileSystem abstracts file system operations for testability.
// Errors must match what the os package returns (*fs.PathError wrapping a
// syscall.Errno) so that callers can classify them.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Remove removes the named file or empty directory.
	Remove(path string) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in PATH.
	LookPath(file string) (string, error)

	// Execute runs a command and returns its combined output.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Default instances using real OS operations.
var (
	defaultFS       FileSystem      = &osFileSystem{}
	defaultExecutor CommandExecutor = &osExecutor{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultExecutor returns the default CommandExecutor implementation.
func DefaultExecutor() CommandExecutor {
	return defaultExecutor
}

// SetDefaultFS sets the default FileSystem (useful for testing).
func SetDefaultFS(fs FileSystem) {
	defaultFS = fs
}

// SetDefaultExecutor sets the default CommandExecutor (useful for testing).
func SetDefaultExecutor(exec CommandExecutor) {
	defaultExecutor = exec
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultExecutor = &osExecutor{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (f *osFileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
