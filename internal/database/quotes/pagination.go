package quotes

import (
	"fmt"
	"math"

	"github.com/mrlokans/quotes/internal/entities"
)

func validatePage(page, size int) error {
	if page < 1 || size < 1 {
		return fmt.Errorf("page %d, size %d: %w", page, size, ErrInvalidPage)
	}
	return nil
}

// offset converts a 1-based page number into a row offset. ok is false when
// the offset does not fit in an int; no such page can hold rows.
func offset(page, size int) (off int, ok bool) {
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}

// totalPages is ceil(total / size).
func totalPages(total int64, size int) int64 {
	if total <= 0 {
		return 0
	}
	s := int64(size)
	return (total + s - 1) / s
}

func newPage[T any](items []T, page, size int, total int64) (*entities.Page[T], error) {
	if len(items) == 0 {
		return nil, ErrEmptyPage
	}
	return &entities.Page[T]{
		Items:      items,
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages(total, size),
	}, nil
}
