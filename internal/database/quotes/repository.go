package quotes

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/quotes/internal/entities"
)

// Repository is the data-access layer for authors, quotes and tags.
// It holds no state besides the connection pool and is safe for concurrent use.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// transaction runs fn in a single transaction. Errors already classified by
// fn pass through, anything else is reported as a storage failure.
func (r *Repository) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(fn)
	if err == nil || errors.Is(err, ErrStorage) || errors.Is(err, ErrNotFound) {
		return err
	}
	return storageError(op, err)
}

// CreateQuote stores a quote together with its author and tags. The author and
// each tag are resolved through get-or-create; everything commits or nothing does.
// The returned tags follow the input one for one, repeats included, while a tag
// resolved more than once is attached to the quote only once.
func (r *Repository) CreateQuote(ctx context.Context, in entities.QuoteCreateDTO) (*entities.QuoteDTO, error) {
	var created entities.QuoteDTO

	err := r.transaction(ctx, "create quote", func(tx *gorm.DB) error {
		author, err := getOrCreateAuthor(tx, in.AuthorName)
		if err != nil {
			return err
		}

		quote := entities.Quote{Text: in.Quote, AuthorID: author.ID}
		if err := tx.Omit(clause.Associations).Create(&quote).Error; err != nil {
			return storageError("insert quote", err)
		}
		quote.Author = *author

		tags := make([]entities.Tag, 0, len(in.RelatedTags))
		attached := make(map[uint]bool, len(in.RelatedTags))
		for _, text := range in.RelatedTags {
			tag, err := getOrCreateTag(tx, text)
			if err != nil {
				return err
			}
			tags = append(tags, *tag)
			if attached[tag.ID] {
				continue
			}
			if err := attachTag(tx, quote.ID, tag.ID); err != nil {
				return err
			}
			attached[tag.ID] = true
		}

		created = entities.NewQuoteDTO(quote, tags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOrCreateAuthor returns the author with the lowercased name, creating it if needed.
func (r *Repository) GetOrCreateAuthor(ctx context.Context, name string) (*entities.AuthorDTO, error) {
	author, err := getOrCreateAuthor(r.db.WithContext(ctx), name)
	if err != nil {
		return nil, err
	}
	dto := entities.NewAuthorDTO(*author)
	return &dto, nil
}

// GetOrCreateTag returns the first existing tag whose text contains the
// lowercased text, creating a new tag when none does.
func (r *Repository) GetOrCreateTag(ctx context.Context, text string) (*entities.TagDTO, error) {
	tag, err := getOrCreateTag(r.db.WithContext(ctx), text)
	if err != nil {
		return nil, err
	}
	dto := entities.NewTagDTO(*tag)
	return &dto, nil
}

func (r *Repository) GetQuote(ctx context.Context, id uint) (*entities.QuoteDTO, error) {
	return getQuote(r.db.WithContext(ctx), id)
}

// GetQuotesPage lists quotes ordered by author name, then quote id.
func (r *Repository) GetQuotesPage(ctx context.Context, page, size int) (*entities.Page[entities.QuoteDTO], error) {
	return listQuotes(r.db.WithContext(ctx), nil, page, size)
}

func (r *Repository) GetTagsPage(ctx context.Context, page, size int) (*entities.Page[entities.TagDTO], error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entities.Tag{}).Count(&total).Error; err != nil {
		return nil, storageError("count tags", err)
	}

	off, ok := offset(page, size)
	if !ok {
		return nil, ErrEmptyPage
	}
	var rows []entities.Tag
	err := db.Order("tag ASC").Order("id ASC").
		Offset(off).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, storageError("list tags", err)
	}

	items := make([]entities.TagDTO, 0, len(rows))
	for _, t := range rows {
		items = append(items, entities.NewTagDTO(t))
	}
	return newPage(items, page, size, total)
}

func (r *Repository) GetAuthorsPage(ctx context.Context, page, size int) (*entities.Page[entities.AuthorDTO], error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entities.Author{}).Count(&total).Error; err != nil {
		return nil, storageError("count authors", err)
	}

	off, ok := offset(page, size)
	if !ok {
		return nil, ErrEmptyPage
	}
	var rows []entities.Author
	err := db.Order("name ASC").Order("id ASC").
		Offset(off).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, storageError("list authors", err)
	}

	items := make([]entities.AuthorDTO, 0, len(rows))
	for _, a := range rows {
		items = append(items, entities.NewAuthorDTO(a))
	}
	return newPage(items, page, size, total)
}

// GetTagWithQuotes returns a tag and one page of the quotes carrying it.
// A missing tag yields ErrNotFound, an empty page yields ErrEmptyPage.
func (r *Repository) GetTagWithQuotes(ctx context.Context, tagID uint, page, size int) (*entities.TagWithQuotes, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var tag entities.Tag
	if err := db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("tag", tagID)
		}
		return nil, storageError("get tag", err)
	}

	tagged := db.Model(&entities.QuoteTagAssociation{}).Select("quote_id").Where("tag_id = ?", tagID)
	quotes, err := listQuotes(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("quote.id IN (?)", tagged)
	}, page, size)
	if err != nil {
		return nil, err
	}

	return &entities.TagWithQuotes{Tag: entities.NewTagDTO(tag), Quotes: *quotes}, nil
}

// GetAuthorWithQuotes returns an author and one page of their quotes.
// A missing author yields ErrNotFound, an empty page yields ErrEmptyPage.
func (r *Repository) GetAuthorWithQuotes(ctx context.Context, authorID uint, page, size int) (*entities.AuthorWithQuotes, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)

	var author entities.Author
	if err := db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("author", authorID)
		}
		return nil, storageError("get author", err)
	}

	quotes, err := listQuotes(db, func(q *gorm.DB) *gorm.DB {
		return q.Where("quote.author_id = ?", authorID)
	}, page, size)
	if err != nil {
		return nil, err
	}

	return &entities.AuthorWithQuotes{Author: entities.NewAuthorDTO(author), Quotes: *quotes}, nil
}

// DeleteQuote removes the quote row. Associations are left for the sweep and
// deleting a missing id is not an error.
func (r *Repository) DeleteQuote(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Quote{}, id).Error; err != nil {
		return storageError("delete quote", err)
	}
	return nil
}

// DeleteTag removes the tag row with the same semantics as DeleteQuote.
func (r *Repository) DeleteTag(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Tag{}, id).Error; err != nil {
		return storageError("delete tag", err)
	}
	return nil
}

// UpdateQuoteTag attaches a tag, resolved through get-or-create, to an existing quote.
func (r *Repository) UpdateQuoteTag(ctx context.Context, quoteID uint, tagText string) (*entities.QuoteDTO, error) {
	var updated *entities.QuoteDTO

	err := r.transaction(ctx, "update quote tag", func(tx *gorm.DB) error {
		var quote entities.Quote
		if err := tx.Select("id").First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("quote", quoteID)
			}
			return storageError("get quote", err)
		}

		tag, err := getOrCreateTag(tx, tagText)
		if err != nil {
			return err
		}
		if err := attachTag(tx, quoteID, tag.ID); err != nil {
			return err
		}

		updated, err = getQuote(tx, quoteID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDanglingAssociations removes association rows pointing at deleted
// quotes or tags and returns how many were removed.
func (r *Repository) DeleteDanglingAssociations(ctx context.Context) (int64, error) {
	query, args, err := deleteDanglingAssociations()
	if err != nil {
		return 0, storageError("build sweep", err)
	}
	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return 0, storageError("sweep associations", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Repository) Counts(ctx context.Context) (entities.CatalogCounts, error) {
	db := r.db.WithContext(ctx)
	var counts entities.CatalogCounts

	if err := db.Model(&entities.Author{}).Count(&counts.Authors).Error; err != nil {
		return counts, storageError("count authors", err)
	}
	if err := db.Model(&entities.Quote{}).Count(&counts.Quotes).Error; err != nil {
		return counts, storageError("count quotes", err)
	}
	if err := db.Model(&entities.Tag{}).Count(&counts.Tags).Error; err != nil {
		return counts, storageError("count tags", err)
	}
	return counts, nil
}

func getOrCreateAuthor(db *gorm.DB, name string) (*entities.Author, error) {
	name = strings.ToLower(name)

	var author entities.Author
	err := db.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("find author", err)
	}

	query, args, err := insertAuthorIgnoringConflict(name)
	if err != nil {
		return nil, storageError("build author insert", err)
	}
	if err := db.Exec(query, args...).Error; err != nil {
		return nil, storageError("insert author", err)
	}

	if err := db.Where("name = ?", name).First(&author).Error; err != nil {
		return nil, storageError("fetch author", err)
	}
	return &author, nil
}

func getOrCreateTag(db *gorm.DB, text string) (*entities.Tag, error) {
	text = strings.ToLower(text)

	// instr keeps the match literal, LIKE would treat % and _ as wildcards.
	var tag entities.Tag
	err := db.Where("instr(tag, ?) > 0", text).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("find tag", err)
	}

	query, args, err := insertTagIgnoringConflict(text)
	if err != nil {
		return nil, storageError("build tag insert", err)
	}
	if err := db.Exec(query, args...).Error; err != nil {
		return nil, storageError("insert tag", err)
	}

	if err := db.Where("tag = ?", text).First(&tag).Error; err != nil {
		return nil, storageError("fetch tag", err)
	}
	return &tag, nil
}

func attachTag(db *gorm.DB, quoteID, tagID uint) error {
	query, args, err := insertAssociationIgnoringConflict(quoteID, tagID)
	if err != nil {
		return storageError("build association insert", err)
	}
	if err := db.Exec(query, args...).Error; err != nil {
		return storageError("insert association", err)
	}
	return nil
}

func getQuote(db *gorm.DB, id uint) (*entities.QuoteDTO, error) {
	var quote entities.Quote
	if err := db.Preload("Author").First(&quote, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("quote", id)
		}
		return nil, storageError("get quote", err)
	}

	tags, err := loadTags(db, []uint{quote.ID})
	if err != nil {
		return nil, err
	}

	dto := entities.NewQuoteDTO(quote, tags[quote.ID])
	return &dto, nil
}

// listQuotes pages over quotes joined with their author. scope narrows the
// set (by tag or author) and may be nil.
func listQuotes(db *gorm.DB, scope func(*gorm.DB) *gorm.DB, page, size int) (*entities.Page[entities.QuoteDTO], error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}

	query := func() *gorm.DB {
		q := db.Model(&entities.Quote{}).Joins("JOIN author ON author.id = quote.author_id")
		if scope != nil {
			q = scope(q)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, storageError("count quotes", err)
	}

	off, ok := offset(page, size)
	if !ok {
		return nil, ErrEmptyPage
	}
	var rows []entities.Quote
	err := query().
		Preload("Author").
		Order("author.name ASC").Order("quote.id ASC").
		Offset(off).Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, storageError("list quotes", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, q := range rows {
		ids = append(ids, q.ID)
	}
	tags, err := loadTags(db, ids)
	if err != nil {
		return nil, err
	}

	items := make([]entities.QuoteDTO, 0, len(rows))
	for _, q := range rows {
		items = append(items, entities.NewQuoteDTO(q, tags[q.ID]))
	}
	return newPage(items, page, size, total)
}

type quoteTagRow struct {
	QuoteID uint
	ID      uint
	Tag     string
}

// loadTags fetches the tag sets of the given quotes in association insertion order.
func loadTags(db *gorm.DB, quoteIDs []uint) (map[uint][]entities.Tag, error) {
	result := make(map[uint][]entities.Tag, len(quoteIDs))
	if len(quoteIDs) == 0 {
		return result, nil
	}

	var rows []quoteTagRow
	err := db.Table("quote_tag_association").
		Select("quote_tag_association.quote_id, tag.id, tag.tag").
		Joins("JOIN tag ON tag.id = quote_tag_association.tag_id").
		Where("quote_tag_association.quote_id IN ?", quoteIDs).
		Order("quote_tag_association.rowid").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("load tags", err)
	}

	for _, row := range rows {
		result[row.QuoteID] = append(result[row.QuoteID], entities.Tag{ID: row.ID, Tag: row.Tag})
	}
	return result, nil
}
