package quotes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyPage means a listing page yielded no rows. It wraps ErrNotFound,
	// so callers that only check for absence treat both the same way.
	ErrEmptyPage = fmt.Errorf("%w: empty page", ErrNotFound)

	// ErrStorage wraps any failure reported by the database.
	ErrStorage = errors.New("storage error")

	// ErrInvalidPage is returned for a page number or page size below 1.
	ErrInvalidPage = errors.New("page and page size must be positive")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
