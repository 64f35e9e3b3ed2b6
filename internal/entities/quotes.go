package entities

// Author is a person a quote is attributed to. Names are stored lowercased.
type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_author_name" json:"name"`
}

func (Author) TableName() string {
	return "author"
}

type Quote struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"column:quote;not null" json:"quote"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   Author `gorm:"foreignKey:AuthorID" json:"author"`
}

func (Quote) TableName() string {
	return "quote"
}

// Tag is a short label. Tag text is stored lowercased.
type Tag struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Tag string `gorm:"column:tag;not null;uniqueIndex:idx_tag_tag" json:"tag"`
}

func (Tag) TableName() string {
	return "tag"
}

// QuoteTagAssociation links a quote to a tag. The pair is the primary key.
type QuoteTagAssociation struct {
	QuoteID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID   uint `gorm:"primaryKey;autoIncrement:false"`
}

func (QuoteTagAssociation) TableName() string {
	return "quote_tag_association"
}
