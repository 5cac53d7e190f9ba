package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store backed by a single JSON snapshot on disk. The whole map is
// rewritten on every mutation; fine for the handful of keys this system
// keeps, and it survives process restarts the way browser local storage
// survives reloads.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// OpenFile loads the snapshot at path, creating an empty store if the file
// does not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]json.RawMessage)}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	return f, nil
}

func (f *File) Get(ctx context.Context, key string, v any) error {
	f.mu.Lock()
	raw, ok := f.values[key]
	f.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value at %q: %w", key, err)
	}
	return nil
}

func (f *File) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = raw
	return f.flush()
}

func (f *File) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

// flush writes the snapshot via a temp file + rename so a crash mid-write
// never leaves a truncated store. Caller must hold mu.
func (f *File) flush() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("failed to encode store snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write store snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store snapshot: %w", err)
	}
	return nil
}

// DefaultPath returns a per-user location for the file store.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "taskboard.json"
	}
	return filepath.Join(dir, "taskboard", "store.json")
}

var _ Store = (*File)(nil)
