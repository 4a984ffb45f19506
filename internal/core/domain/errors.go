package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Catalog Errors.

	// ErrCatalogNotLoaded indicates a search ran before the mapping table
	// was published. Front ends report it as "Mapping not loaded."
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrCatalogMalformed indicates the mapping source was present but
	// was not a JSON array of records.
	ErrCatalogMalformed = errors.New("catalog malformed")
)
