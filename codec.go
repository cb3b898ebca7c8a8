package todogo

import "errors"

// Codec serializes the whole task collection to and from backing
// storage. Implementations load wholesale and rewrite wholesale; there
// is no partial update.
type Codec interface {
	// Load returns the persisted collection. A missing backing file is
	// not an error and yields an empty collection.
	Load() ([]Task, error)
	// Save overwrites the backing file with the full collection.
	Save([]Task) error
}

var (
	ErrNotFound = errors.New("not found")
	// ErrCorruptStore marks a backing file that exists but cannot be
	// decoded. Callers must not overwrite the file when they see this.
	ErrCorruptStore = errors.New("corrupt task store")
)
