// Package credentials persists the login token of the command line client
// between runs.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Credentials identify a logged-in user. The password is never stored.
type Credentials struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
}

// Store keeps at most one set of credentials.
type Store interface {
	Load() (Credentials, bool, error)
	Save(c Credentials) error
	Clear() error
}

// FileStore keeps credentials in a YAML file readable only by the owner.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reports false when nothing usable is stored.
func (s *FileStore) Load() (Credentials, bool, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("read credentials: %w", err)
	}

	var c Credentials
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Credentials{}, false, fmt.Errorf("parse credentials %s: %w", s.Path, err)
	}

	if c.Token == "" || c.Username == "" {
		return Credentials{}, false, nil
	}

	return c, true, nil
}

func (s *FileStore) Save(c Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	// the file is replaced atomically
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Chmod(tmp, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return nil
}

// Clear removes the file. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}

	return nil
}
