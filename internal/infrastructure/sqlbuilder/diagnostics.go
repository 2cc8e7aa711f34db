package sqlbuilder

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/orris-inc/fitment/internal/shared/query"
)

// ViewCount counts fitment view rows for a make and optional model.
func (b *Builder) ViewCount(makeID int64, modelID query.Optional[int64]) (Query, error) {
	sb := b.stmt.Select("COUNT(*) AS cnt").
		From(fitmentView).
		Where(sq.Eq{"make_id": makeID})
	sb = Predicates{}.With(eq("model_id", modelID)).Apply(sb)
	return render("diag_view_count", sb, 0)
}

// RawListingCount counts listings joined to a trim of the make and optional model.
func (b *Builder) RawListingCount(makeID int64, modelID query.Optional[int64]) (Query, error) {
	sb := b.stmt.Select("COUNT(*) AS cnt").
		From("listing l").
		Join("trim t ON l.trim_id = t.trim_id").
		Where(sq.Eq{"t.make_id": makeID})
	sb = Predicates{}.With(eq("t.model_id", modelID)).Apply(sb)
	return render("diag_raw_listing_count", sb, 0)
}

// ListingTrimCoverage counts all listings and those carrying a trim_id.
func (b *Builder) ListingTrimCoverage() (Query, error) {
	sb := b.stmt.Select("COUNT(*) AS total", "COUNT(trim_id) AS with_trim").
		From("listing")
	return render("diag_listing_trim_coverage", sb, 0)
}

// TrimsForMakeModel lists the trim ids of a make and optional model.
func (b *Builder) TrimsForMakeModel(makeID int64, modelID query.Optional[int64]) (Query, error) {
	sb := b.stmt.Select("trim_id").
		From("trim").
		Where(sq.Eq{"make_id": makeID})
	sb = Predicates{}.With(eq("model_id", modelID)).Apply(sb)
	sb = sb.OrderBy("trim_id")
	return render("diag_trims", sb, 0)
}

// ListingsForTrims counts listings using any of trimIDs.
func (b *Builder) ListingsForTrims(trimIDs []int64) (Query, error) {
	if len(trimIDs) == 0 {
		return Query{}, ErrNoTrims
	}
	sb := b.stmt.Select("COUNT(*) AS cnt").
		From("listing").
		Where(sq.Eq{"trim_id": trimIDs})
	return render("diag_listings_for_trims", sb, 0)
}
