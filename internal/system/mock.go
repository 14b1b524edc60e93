package system

import (
	"context"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	RemoveErr    error
	MkdirAllErr  error
}

type mockFile struct {
	data []byte
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode}
	// Ensure parent directories exist
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

// FileMode returns the permissions a file was written with.
func (m *MockFS) FileMode(path string) (fs.FileMode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return 0, false
	}
	return f.mode, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dirs[path] {
		return nil, &fs.PathError{Op: "read", Path: path, Err: syscall.EISDIR}
	}
	f, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: syscall.ENOENT}
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: path, Err: syscall.ENOENT}
	}
	m.files[path] = &mockFile{data: data, mode: perm}
	return nil
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: path, Err: syscall.ENOENT}
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	// Create all directories in the path
	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses.
	// Key format: "command arg1"
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// Binaries maps executable names to the path LookPath returns.
	// Names not present are reported as not found.
	Binaries map[string]string
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
		Binaries:  make(map[string]string),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, Err: err}
}

// AddBinary makes LookPath find name at path.
func (m *MockExecutor) AddBinary(name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Binaries[name] = path
}

func (m *MockExecutor) LookPath(file string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path, ok := m.Binaries[file]; ok {
		return path, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args})

	// Look for matching response
	key := name
	if len(args) > 0 {
		key = name + " " + args[0]
	}

	if resp, ok := m.Responses[key]; ok {
		return resp.Output, resp.Err
	}
	if resp, ok := m.Responses[name]; ok {
		return resp.Output, resp.Err
	}

	return m.DefaultResponse.Output, m.DefaultResponse.Err
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]MockCommand, 0)
}
