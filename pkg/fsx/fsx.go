package fsx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// ErrNotExist is returned when a path has no object behind it
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader is the read half of a FileSystem
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSystem abstracts the object store that holds uploaded files
type FileSystem interface {
	FileReader

	Join(elem ...string) string
	WriteFile(ctx context.Context, name string, data []byte) error
	WriteFileStream(ctx context.Context, name string, r io.Reader) error
	DeleteFile(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// ============================================================================
// In-memory implementation
// ============================================================================

// MemoryFileSystem keeps files in a map. Used for local runs without a bucket.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

func (m *MemoryFileSystem) Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

func (m *MemoryFileSystem) WriteFile(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFileSystem) WriteFileStream(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.WriteFile(ctx, name, data)
}

func (m *MemoryFileSystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFileSystem) ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error) {
	data, err := m.ReadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryFileSystem) DeleteFile(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

func (m *MemoryFileSystem) Exists(ctx context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok, nil
}

// Paths lists stored paths in lexical order
func (m *MemoryFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
