// Package store provides the key-value persistence the scorer uses for its
// two settings: the API credential and the selected model. The pipeline only
// depends on the Store interface; hosts supply the concrete binding.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a minimal key-value interface. Get reports presence explicitly so
// an empty stored value is distinguishable from an absent key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Watcher is implemented by stores that can report changes made through
// other handles of the same backing data, such as another process or tab.
type Watcher interface {
	OnExternalChange(key string, fn func(value string, ok bool))
}

// MemStore is an in-memory Store with change notification, used in tests and
// as the backing for ephemeral sessions.
type MemStore struct {
	mu        sync.RWMutex
	values    map[string]string
	listeners map[string][]func(value string, ok bool)
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		values:    make(map[string]string),
		listeners: make(map[string][]func(value string, ok bool)),
	}
}

// Get returns the stored value for key.
func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores value under key and notifies listeners.
func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	listeners := append(([]func(string, bool))(nil), m.listeners[key]...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(value, true)
	}
	return nil
}

// Delete removes key and notifies listeners.
func (m *MemStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	listeners := append(([]func(string, bool))(nil), m.listeners[key]...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn("", false)
	}
	return nil
}

// OnExternalChange registers fn to run when key changes through this store.
func (m *MemStore) OnExternalChange(key string, fn func(value string, ok bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[key] = append(m.listeners[key], fn)
}

// FileStore persists keys as a single JSON file. Writes are atomic via a
// temp-file rename. It does not watch for external changes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path. The parent
// directory is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the standard settings file location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "ats-scorer", "settings.json"), nil
}

// Get returns the stored value for key.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Delete removes key.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.save(values)
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
