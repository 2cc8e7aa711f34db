package sqlbuilder

import (
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/orris-inc/fitment/internal/domain/fitment"
)

var searchColumns = []string{
	"make_name AS make",
	"model_name AS model",
	"year AS year",
	"trim_name AS trim",
	"brand_name AS brand",
	"parttype_name AS part_type",
	"position_code AS position",
	"drive_code AS drive",
	"listing_title AS listing_title",
	"price AS price",
}

// SearchPredicates returns the conditions contributed by f, in a fixed order.
func SearchPredicates(f fitment.SearchFilter) Predicates {
	var p Predicates
	p = p.With(eq("make_id", f.MakeID))
	p = p.With(eq("model_id", f.ModelID))
	p = p.With(eq("year", f.Year))
	p = p.With(eq("trim_id", f.TrimID))
	p = p.With(eq("part_type_id", f.PartTypeID))
	p = p.With(eq("position_id", f.PositionID))
	p = p.With(eq("drive_id", f.DriveID))
	p = p.With(in("brand_id", f.BrandIDs))
	p = p.With(expr("(price IS NOT NULL AND price >= ?)", f.PriceMin))
	p = p.With(expr("(price IS NOT NULL AND price <= ?)", f.PriceMax))
	return p
}

// CoveragePredicates returns the conditions contributed by f, in a fixed order.
func CoveragePredicates(f fitment.CoverageFilter) Predicates {
	var p Predicates
	p = p.With(eq("make_id", f.MakeID))
	p = p.With(eq("model_id", f.ModelID))
	p = p.With(eq("year", f.Year))
	p = p.With(eq("part_type_id", f.PartTypeID))
	return p
}

// Search renders the fitment search over the normalized view.
func (b *Builder) Search(f fitment.SearchFilter) (Query, error) {
	sb := b.stmt.Select(searchColumns...).From(fitmentView)
	sb = SearchPredicates(f).Apply(sb)
	sb = sb.OrderBy("make_name", "model_name", "year", "brand_name", "price")
	return render("search", sb, SearchRowCap)
}

// Coverage renders the brand and part type aggregate.
func (b *Builder) Coverage(f fitment.CoverageFilter) (Query, error) {
	sb := b.stmt.Select(
		"brand_name AS brand_name",
		"parttype_name AS part_type",
		"COUNT(*) AS listing_count",
		"MIN(price) AS cheapest_price",
	).From(fitmentView)
	sb = CoveragePredicates(f).Apply(sb)
	sb = sb.GroupBy("brand_name", "parttype_name").
		OrderBy("brand_name", "parttype_name")
	return render("coverage", sb, CoverageRowCap)
}

// ErrNoTokens is returned when an alias lookup has nothing to match.
var ErrNoTokens = errors.New("no tokens to look up")

// AliasLookup renders the alias detection query for an upper-cased token set.
func (b *Builder) AliasLookup(tokens []string) (Query, error) {
	if len(tokens) == 0 {
		return Query{}, ErrNoTokens
	}
	sb := b.stmt.Select(
		"alias_text AS alias_text",
		"canonical_value AS canonical_value",
	).
		Distinct().
		From("brand_alias").
		Where(sq.Or{
			sq.Eq{"UPPER(alias_text)": tokens},
			sq.Eq{"UPPER(canonical_value)": tokens},
		}).
		OrderBy("alias_text", "canonical_value")
	return render("alias_lookup", sb, ReportRowCap)
}
