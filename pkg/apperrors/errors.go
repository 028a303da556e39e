package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrSourceNotFound is returned when the table to sample does not exist.
	// Nothing has been read or written when it is returned. It matches ErrNotFound.
	ErrSourceNotFound = fmt.Errorf("source table %w", ErrNotFound)

	// ErrDestinationCollision is returned when the destination table already exists.
	// No DDL or DML has been issued when it is returned. It matches ErrConflict.
	ErrDestinationCollision = fmt.Errorf("destination table already exists: %w", ErrConflict)

	// ErrExecutionFailure wraps a DDL/DML statement rejected by the datasource.
	// The destination may be left empty or partially populated.
	ErrExecutionFailure = errors.New("statement execution failed")
)
