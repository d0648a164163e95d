package testable

import (
	"os"
	"sync"
)

// MockFileSystem is a test double for FileSystem. A non-nil function field
// replaces the corresponding method; otherwise the call reaches the real OS.
// Every WriteFile call is recorded, including ones that fail.
type MockFileSystem struct {
	StatFn      func(name string) (os.FileInfo, error)
	ReadFileFn  func(name string) ([]byte, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error
	MkdirAllFn  func(path string, perm os.FileMode) error

	mu     sync.Mutex
	writes []Write
}

// Write is one recorded WriteFile call.
type Write struct {
	Name string
	Data []byte
	Perm os.FileMode
}

var real OsFileSystem

// Stat calls StatFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return real.Stat(name)
}

// ReadFile calls ReadFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return real.ReadFile(name)
}

// WriteFile records the call, then calls WriteFileFn if set, otherwise
// delegates to OsFileSystem.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	m.writes = append(m.writes, Write{Name: name, Data: append([]byte(nil), data...), Perm: perm})
	m.mu.Unlock()

	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return real.WriteFile(name, data, perm)
}

// MkdirAll calls MkdirAllFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return real.MkdirAll(path, perm)
}

// Writes returns a copy of the recorded WriteFile calls.
func (m *MockFileSystem) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Write, len(m.writes))
	copy(out, m.writes)
	return out
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)
