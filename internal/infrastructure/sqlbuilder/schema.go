package sqlbuilder

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyTableName is returned when a preview has no table to read.
	ErrEmptyTableName = errors.New("table name is required")

	// ErrNoTrims is returned when a trim usage count has no trims to look for.
	ErrNoTrims = errors.New("no trim ids to count")
)

// ListTables renders the catalog query for base tables.
func (b *Builder) ListTables() (Query, error) {
	return render("list_tables", b.dialect.Catalog("table"), 0)
}

// ListViews renders the catalog query for views.
func (b *Builder) ListViews() (Query, error) {
	return render("list_views", b.dialect.Catalog("view"), 0)
}

// Preview renders a capped SELECT * over a catalog object. The name is quoted, never bound, so
// callers must only pass names obtained from ListTables or ListViews.
func (b *Builder) Preview(table string) (Query, error) {
	if strings.TrimSpace(table) == "" {
		return Query{}, ErrEmptyTableName
	}
	sb := b.stmt.Select("*").From(b.dialect.QuoteIdent(table))
	return render("preview", sb, PreviewRowCap)
}

// Count renders a row count over a known table.
func (b *Builder) Count(table string) (Query, error) {
	if strings.TrimSpace(table) == "" {
		return Query{}, ErrEmptyTableName
	}
	sb := b.stmt.Select("COUNT(*) AS cnt").From(b.dialect.QuoteIdent(table))
	return render("count_"+table, sb, 0)
}
