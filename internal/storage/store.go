package storage

import "errors"

// Common errors returned by slot media.
var (
	// ErrSlotNotFound indicates the named slot has never been written.
	ErrSlotNotFound = errors.New("storage: slot not found")
	// ErrStoreUnavailable indicates the medium cannot serve reads or writes
	// in the current execution context.
	ErrStoreUnavailable = errors.New("storage: store unavailable")
)

// Store is a named-slot durable key-value medium. It is the only abstraction
// the rest of the code has over where snapshots live, so any durable slot
// (a file per key, an in-memory map in tests, a no-op in contexts without
// durable storage) can stand in.
type Store interface {
	// Get returns the raw bytes last written to the slot, or ErrSlotNotFound.
	Get(key string) ([]byte, error)

	// Set overwrites the slot contents. Writes must be atomic: a crash mid-
	// write leaves either the previous or the new contents, never a mix.
	Set(key string, data []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(key string) error
}
