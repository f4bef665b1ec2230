package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finbell/stockcast/internal/storage"
)

// Storage persists run artifacts as json files under a root directory.
type Storage struct {
	root string
}

// NewStorage creates a json file persistence rooted at the given directory.
func NewStorage(root string) *Storage {
	return &Storage{
		root: root,
	}
}

// Store writes the value as json under the key path.
func (s *Storage) Store(k storage.Key, value interface{}) error {
	if err := os.MkdirAll(s.root, os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir %s: %w", s.root, err)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal value for '%+v': %w", k, err)
	}

	p := filepath.Join(s.root, k.Path())
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load reads the value stored under the key path.
func (s *Storage) Load(k storage.Key, value interface{}) error {
	p := filepath.Join(s.root, k.Path())

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not unmarshal '%s': %w", p, storage.CouldNotLoadErr)
	}
	return nil
}
