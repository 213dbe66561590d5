package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each slot in its own JSON file under a base directory.
// Writes go to a temp file in the same directory followed by a rename so a
// crash never leaves a half-written slot behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the base directory when needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Get reads the slot file, mapping a missing file to ErrSlotNotFound.
func (s *FileStore) Get(key string) ([]byte, error) {
	if s == nil {
		return nil, ErrStoreUnavailable
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("storage: read slot %s: %w", key, err)
	}
	return data, nil
}

// Set writes the slot atomically via a sibling temp file and rename.
func (s *FileStore) Set(key string, data []byte) error {
	if s == nil {
		return ErrStoreUnavailable
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp for slot %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: replace slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot file; an absent file is not an error.
func (s *FileStore) Delete(key string) error {
	if s == nil {
		return ErrStoreUnavailable
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete slot %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return "", fmt.Errorf("storage: invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
