package fitment

import (
	"context"

	"github.com/orris-inc/fitment/internal/shared/query"
)

// Repository runs the read-only fitment queries. Query operations return data tables; empty results
// are tables with no rows, failures are returned as errors.
type Repository interface {
	// Search returns listings matching the filter, capped at the search row cap
	Search(ctx context.Context, filter SearchFilter) (*Table, error)

	// Coverage groups matching listings by brand and part type
	Coverage(ctx context.Context, filter CoverageFilter) (*Table, error)

	// LookupAliases returns distinct alias pairs whose alias or canonical value is one of tokens
	LookupAliases(ctx context.Context, tokens []string) (*Table, error)

	AliasCollisions(ctx context.Context) (*Table, error)
	MissingMPN(ctx context.Context) (*Table, error)
	OEMMismatches(ctx context.Context) (*Table, error)

	// SchemaObjects lists table and view names from the store catalog
	SchemaObjects(ctx context.Context) ([]string, error)

	// Preview returns the first rows of a table or view the caller has already validated
	Preview(ctx context.Context, name string) (*Table, error)

	// Count returns the row count of one of the fact or dimension tables
	Count(ctx context.Context, table string) (int64, error)

	Makes(ctx context.Context) ([]Option, error)
	Models(ctx context.Context, makeID int64) ([]Option, error)
	Years(ctx context.Context, modelID int64) ([]int, error)
	Trims(ctx context.Context, modelID int64, year query.Optional[int]) ([]Option, error)
	PartTypes(ctx context.Context) ([]Option, error)
	Positions(ctx context.Context) ([]Option, error)
	Drives(ctx context.Context) ([]Option, error)
	Brands(ctx context.Context) ([]Option, error)
}

// DiagnosticsRepository answers the auxiliary count queries used to explain empty searches.
type DiagnosticsRepository interface {
	ViewCount(ctx context.Context, makeID int64, modelID query.Optional[int64]) (int64, error)
	RawListingCount(ctx context.Context, makeID int64, modelID query.Optional[int64]) (int64, error)
	ListingTrimCoverage(ctx context.Context) (total int64, withTrim int64, err error)
	TrimIDs(ctx context.Context, makeID int64, modelID query.Optional[int64]) ([]int64, error)
	ListingsForTrims(ctx context.Context, trimIDs []int64) (int64, error)
}

// Tables counted for the dashboard header.
const (
	TableListing = "listing"
	TableBrand   = "brand"
	TableTrim    = "trim"
)
