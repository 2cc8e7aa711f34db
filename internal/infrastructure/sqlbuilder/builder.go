// Package sqlbuilder assembles the parameterized read queries of the fitment dashboard.
//
// Every optional filter contributes zero or one condition to an ordered predicate list which is
// joined with AND when the query is rendered. Values are always bound through placeholders.
package sqlbuilder

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/orris-inc/fitment/internal/shared/query"
)

// Row caps.
const (
	SearchRowCap   = 1000
	ReportRowCap   = 500
	PreviewRowCap  = 50
	CoverageRowCap = 1000
)

const fitmentView = "view_normalizedfitment"

// Query is a rendered statement with its bound arguments.
type Query struct {
	Name  string
	SQL   string
	Args  []any
	Limit uint64
}

// Predicates is an ordered list of conditions joined with AND.
type Predicates []sq.Sqlizer

// With appends cond when ok is true.
func (p Predicates) With(cond sq.Sqlizer, ok bool) Predicates {
	if !ok {
		return p
	}
	return append(p, cond)
}

// Apply adds every predicate to b as a WHERE condition.
func (p Predicates) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	for _, cond := range p {
		b = b.Where(cond)
	}
	return b
}

// eq yields "column = ?" for a present value.
func eq[T any](column string, v query.Optional[T]) (sq.Sqlizer, bool) {
	val, ok := v.Get()
	if !ok {
		return nil, false
	}
	return sq.Eq{column: val}, true
}

// in yields "column IN (?, ...)" for a non-empty id set.
func in(column string, ids []int64) (sq.Sqlizer, bool) {
	if len(ids) == 0 {
		return nil, false
	}
	return sq.Eq{column: ids}, true
}

// expr yields a raw condition bound to a present value.
func expr[T any](cond string, v query.Optional[T]) (sq.Sqlizer, bool) {
	val, ok := v.Get()
	if !ok {
		return nil, false
	}
	return sq.Expr(cond, val), true
}

// Builder renders queries for one dialect.
type Builder struct {
	dialect Dialect
	stmt    sq.StatementBuilderType
}

// New creates a Builder for the given dialect.
func New(dialect Dialect) *Builder {
	return &Builder{
		dialect: dialect,
		stmt:    sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}
}

// Dialect returns the dialect the builder renders for.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// render fetches one row past limit so a full page can be told apart from a cut one.
func render(name string, sb sq.SelectBuilder, limit uint64) (Query, error) {
	if limit > 0 {
		sb = sb.Limit(limit + 1)
	}
	sql, args, err := sb.ToSql()
	if err != nil {
		return Query{}, fmt.Errorf("failed to build %s query: %w", name, err)
	}
	if args == nil {
		args = []any{}
	}
	return Query{
		Name:  name,
		SQL:   sql,
		Args:  args,
		Limit: limit,
	}, nil
}
