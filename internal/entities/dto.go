package entities

type AuthorDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TagDTO struct {
	ID  uint   `json:"id"`
	Tag string `json:"tag"`
}

// QuoteDTO is a quote composed with its author and tags.
type QuoteDTO struct {
	ID          uint      `json:"id"`
	Quote       string    `json:"quote"`
	RelatedTags []TagDTO  `json:"related_tags"`
	Author      AuthorDTO `json:"author"`
}

// QuoteCreateDTO is the payload for creating a quote. Tags are plain texts.
type QuoteCreateDTO struct {
	Quote       string   `json:"quote" form:"quote" binding:"required,notblank"`
	AuthorName  string   `json:"author_name" form:"author_name" binding:"required,notblank"`
	RelatedTags []string `json:"related_tags" form:"related_tags" binding:"omitempty,dive,notblank"`
}

// TagCreateDTO is the payload for attaching a tag to an existing quote.
type TagCreateDTO struct {
	Tag string `json:"tag" form:"tag" binding:"required,notblank"`
}

// Page is one page of an ordered listing. Number is 1-based.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int64
	TotalPages int64
}

// HasPrev and HasNext drive the pagination links in templates.
func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return int64(p.Number) < p.TotalPages
}

type TagWithQuotes struct {
	Tag    TagDTO
	Quotes Page[QuoteDTO]
}

type AuthorWithQuotes struct {
	Author AuthorDTO
	Quotes Page[QuoteDTO]
}

// CatalogCounts holds row counts exposed by the health endpoint.
type CatalogCounts struct {
	Authors int64 `json:"authors"`
	Quotes  int64 `json:"quotes"`
	Tags    int64 `json:"tags"`
}

func NewAuthorDTO(a Author) AuthorDTO {
	return AuthorDTO{ID: a.ID, Name: a.Name}
}

func NewTagDTO(t Tag) TagDTO {
	return TagDTO{ID: t.ID, Tag: t.Tag}
}

// NewQuoteDTO composes a quote row with its preloaded author and the given tags.
func NewQuoteDTO(q Quote, tags []Tag) QuoteDTO {
	related := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		related = append(related, NewTagDTO(t))
	}
	return QuoteDTO{
		ID:          q.ID,
		Quote:       q.Text,
		RelatedTags: related,
		Author:      NewAuthorDTO(q.Author),
	}
}
