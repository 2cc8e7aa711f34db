// Package fitment holds the read model of the parts fitment catalogue: filters, result tables and the
// repository contract the query layer implements.
package fitment

import (
	"github.com/orris-inc/fitment/internal/shared/query"
)

// Project schema objects visible through the schema browser.
var (
	ProjectTables = []string{
		"MAKE",
		"MODEL",
		"TRIM",
		"ENGINE_SPEC",
		"DRIVE_TRAIN",
		"POSITION",
		"BRAND",
		"PART_TYPE",
		"PARTTYPE_BRAND",
		"LISTING",
		"BRAND_ALIAS",
	}

	ProjectViews = []string{
		"VIEW_NORMALIZEDFITMENT",
	}
)

// Option is a dropdown choice; Value is the identifier sent back as a filter.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Stats are the headline counters shown above the dashboard tabs.
type Stats struct {
	Listings int64 `json:"total_listings" yaml:"total_listings"`
	Brands   int64 `json:"total_brands" yaml:"total_brands"`
	Trims    int64 `json:"total_trims" yaml:"total_trims"`
}

// SearchFilter selects listings from the normalized fitment view.
// Every field is optional; absent fields contribute no predicate.
type SearchFilter struct {
	MakeID     query.Optional[int64]
	ModelID    query.Optional[int64]
	Year       query.Optional[int]
	TrimID     query.Optional[int64]
	PartTypeID query.Optional[int64]
	PositionID query.Optional[int64]
	DriveID    query.Optional[int64]
	BrandIDs   []int64
	PriceMin   query.Optional[float64]
	PriceMax   query.Optional[float64]
}

// FiltersVehicle reports whether the search narrows by make or model, which requires listings to
// carry a trim_id to be visible.
func (f SearchFilter) FiltersVehicle() bool {
	return f.MakeID.IsSet() || f.ModelID.IsSet()
}

// CoverageFilter narrows the brand and part type coverage aggregate.
type CoverageFilter struct {
	MakeID     query.Optional[int64]
	ModelID    query.Optional[int64]
	Year       query.Optional[int]
	PartTypeID query.Optional[int64]
}
