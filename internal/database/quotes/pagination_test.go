package quotes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/quotes/internal/entities"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		size     int
		expected int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{7, 1, 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, totalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, size int
		expected   int
		ok         bool
	}{
		{1, 10, 0, true},
		{3, 10, 20, true},
		{math.MaxInt, 1, math.MaxInt - 1, true},
		{92233720368547760, 100, 0, false},
		{math.MaxInt, 2, 0, false},
	}

	for _, tt := range tests {
		off, ok := offset(tt.page, tt.size)
		assert.Equal(t, tt.ok, ok, "page=%d size=%d", tt.page, tt.size)
		assert.Equal(t, tt.expected, off, "page=%d size=%d", tt.page, tt.size)
	}
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, validatePage(1, 1))
	assert.ErrorIs(t, validatePage(0, 10), ErrInvalidPage)
	assert.ErrorIs(t, validatePage(1, -1), ErrInvalidPage)
}

func TestNewPage_Empty(t *testing.T) {
	_, err := newPage([]entities.TagDTO{}, 2, 10, 5)
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestStatements(t *testing.T) {
	query, args, err := insertAuthorIgnoringConflict("mark twain")
	assert.NoError(t, err)
	assert.Equal(t, "INSERT INTO author (name) VALUES (?) ON CONFLICT(name) DO NOTHING", query)
	assert.Equal(t, []any{"mark twain"}, args)

	query, args, err = insertAssociationIgnoringConflict(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, "INSERT INTO quote_tag_association (quote_id,tag_id) VALUES (?,?) ON CONFLICT(quote_id, tag_id) DO NOTHING", query)
	assert.Equal(t, []any{uint(1), uint(2)}, args)

	query, _, err = deleteDanglingAssociations()
	assert.NoError(t, err)
	assert.Equal(t, "DELETE FROM quote_tag_association WHERE (quote_id NOT IN (SELECT id FROM quote) OR tag_id NOT IN (SELECT id FROM tag))", query)
}
