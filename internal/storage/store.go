package storage

import (
	"errors"
	"fmt"
)

var (
	// NotFoundErr signals a key with no stored value.
	NotFoundErr = errors.New("not found")
	// CouldNotLoadErr signals a stored value that failed to decode.
	CouldNotLoadErr = errors.New("could not load")
)

// Key addresses a stored artifact of a pipeline run.
type Key struct {
	Symbol string `json:"symbol"`
	Run    string `json:"run"`
	Label  string `json:"label"`
}

// Path builds the filename for the key.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%s_%s.json", k.Symbol, k.Run, k.Label)
}

// Persistence stores and loads run artifacts.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// VoidStorage ignores all writes and finds nothing.
type VoidStorage struct {
}

// NewVoidStorage creates a persistence that keeps nothing.
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}

func (v VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (v VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("void storage '%v': %w", k, NotFoundErr)
}
