package quotes

import (
	sq "github.com/Masterminds/squirrel"
)

var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func insertAuthorIgnoringConflict(name string) (string, []any, error) {
	return sqlBuilder.Insert("author").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT(name) DO NOTHING").
		ToSql()
}

func insertTagIgnoringConflict(text string) (string, []any, error) {
	return sqlBuilder.Insert("tag").
		Columns("tag").
		Values(text).
		Suffix("ON CONFLICT(tag) DO NOTHING").
		ToSql()
}

func insertAssociationIgnoringConflict(quoteID, tagID uint) (string, []any, error) {
	return sqlBuilder.Insert("quote_tag_association").
		Columns("quote_id", "tag_id").
		Values(quoteID, tagID).
		Suffix("ON CONFLICT(quote_id, tag_id) DO NOTHING").
		ToSql()
}

// deleteDanglingAssociations removes association rows whose quote or tag is gone.
func deleteDanglingAssociations() (string, []any, error) {
	return sqlBuilder.Delete("quote_tag_association").
		Where(sq.Or{
			sq.Expr("quote_id NOT IN (SELECT id FROM quote)"),
			sq.Expr("tag_id NOT IN (SELECT id FROM tag)"),
		}).
		ToSql()
}
