// Package storage defines the Storage interface, the contract any
// persistence backend must satisfy to save and restore the registry.
//
// WHY AN INTERFACE?
// ─────────────────
// The registry should not know or care whether its snapshot lives in a
// JSON file or a SQLite database. By depending only on this interface:
//
//   - Switching backends = implement the interface, change one line in
//     main.go (or set storage_driver in the config).
//
//   - Writing tests = pass an in-memory fake. No files needed.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-management/internal/types"
)

// ErrNoData is returned by Load when nothing has been saved yet (for the
// JSON backend: the data file does not exist). It is not a failure; the
// caller keeps its current, usually empty, state.
var ErrNoData = errors.New("no saved data")

// Storage is the persistence contract.
//
// Errors other than ErrNoData are *types.Error values of kind
// types.ErrPersistence (I/O) or types.ErrFormat (unreadable content).
type Storage interface {
	// Save replaces whatever was stored with snap.
	Save(snap types.Snapshot) error

	// Load returns the last saved snapshot. Absent collections come back
	// as empty (non-nil) maps.
	Load() (types.Snapshot, error)

	// Close releases any handles held by the backend.
	Close() error
}
