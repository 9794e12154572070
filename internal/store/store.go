// Package store persists user token definitions and named programs.
package store

import (
	"nickandperla.net/lambdacalc/internal/programs"
	"nickandperla.net/lambdacalc/internal/token"
)

// Store is the interface for definition persistence.
type Store interface {
	// Definitions returns every stored token definition in the order it was
	// first stored.
	Definitions() ([]token.Entry, error)
	// PutDefinition stores a token definition, overwriting one with the same name.
	PutDefinition(e token.Entry) error
	// DeleteDefinition removes a token definition.
	DeleteDefinition(name string) error
	// Program retrieves a program by name. Returns nil if not found.
	Program(name string) (*programs.Program, error)
	// PutProgram stores a program, overwriting one with the same name.
	PutProgram(p programs.Program) error
	// Close releases resources.
	Close() error
}

// MetadataStore is a Store that records metadata such as its schema version.
type MetadataStore interface {
	Store
	GetMetadata(key string) (string, error)
}
