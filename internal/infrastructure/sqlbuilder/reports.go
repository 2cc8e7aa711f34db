package sqlbuilder

import (
	sq "github.com/Masterminds/squirrel"
)

const oemPattern = "%OEM%"

// AliasCollisions renders the report of alias texts mapped to more than one canonical value.
func (b *Builder) AliasCollisions() (Query, error) {
	sb := b.stmt.Select(
		"alias_text AS alias_text",
		b.dialect.GroupConcatDistinct("canonical_value")+" AS canonical_values",
		"COUNT(DISTINCT canonical_value) AS collision_count",
	).
		From("brand_alias").
		Where("canonical_value IS NOT NULL").
		GroupBy("alias_text").
		Having("COUNT(DISTINCT canonical_value) > ?", 1).
		OrderBy("collision_count DESC", "alias_text")
	return render("alias_collisions", sb, ReportRowCap)
}

// MissingMPN renders the report of listings without a manufacturer part number.
func (b *Builder) MissingMPN() (Query, error) {
	sb := b.stmt.Select(
		"listing_id AS listing_id",
		"listing_title AS listing_title",
		"brand_id AS brand_id",
		"part_type_id AS part_type_id",
	).
		From("listing").
		Where("mpn IS NULL").
		OrderBy("listing_id")
	return render("missing_mpn", sb, ReportRowCap)
}

// OEMMismatches renders the report of listings whose title claims OEM.
func (b *Builder) OEMMismatches() (Query, error) {
	reason := sq.Expr(
		"CASE WHEN UPPER(b.brand_name) NOT LIKE ? "+
			"THEN 'Title suggests OEM but brand does not match' "+
			"ELSE 'Potential OEM mismatch' END AS reason",
		oemPattern,
	)
	sb := b.stmt.Select(
		"l.listing_id AS listing_id",
		"l.listing_title AS listing_title",
		"b.brand_name AS brand_name",
	).
		Column(reason).
		From("listing l").
		Join("brand b ON l.brand_id = b.brand_id").
		Where("UPPER(l.listing_title) LIKE ?", oemPattern).
		OrderBy("l.listing_id")
	return render("oem_mismatches", sb, ReportRowCap)
}
