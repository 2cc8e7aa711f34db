package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/infrastructure/database/dbtest"
	"github.com/orris-inc/fitment/internal/infrastructure/sqlbuilder"
	apperrors "github.com/orris-inc/fitment/internal/shared/errors"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/query"
)

func openFixtureDB(t *testing.T, statements ...[]string) *gorm.DB {
	t.Helper()
	db, _ := dbtest.Open(t, statements...)
	return db
}

func newTestRepository(t *testing.T) *FitmentRepositoryImpl {
	t.Helper()
	db := openFixtureDB(t, dbtest.Schema, dbtest.Rows)
	return NewFitmentRepository(db, sqlbuilder.New(sqlbuilder.SQLite{}), 0, nil, logger.Nop())
}

func columnValues(table *fitment.Table, column string) []any {
	idx := -1
	for i, c := range table.Columns {
		if c == column {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]any, 0, table.Len())
	for _, row := range table.Rows {
		out = append(out, row[idx])
	}
	return out
}

func TestFitmentRepository_Search(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    fitment.SearchFilter
		wantTitle []any
	}{
		{
			name:      "no filters excludes listings without trim",
			filter:    fitment.SearchFilter{},
			wantTitle: []any{"Front brake pads", "OEM style pads", "OEM rotor", "Rear pads"},
		},
		{
			name:      "make",
			filter:    fitment.SearchFilter{MakeID: query.Some(int64(1))},
			wantTitle: []any{"Front brake pads", "OEM style pads", "OEM rotor"},
		},
		{
			name:      "make and year",
			filter:    fitment.SearchFilter{MakeID: query.Some(int64(1)), Year: query.Some(2020)},
			wantTitle: []any{"OEM rotor"},
		},
		{
			name:      "brand set",
			filter:    fitment.SearchFilter{BrandIDs: []int64{1}},
			wantTitle: []any{"Front brake pads", "Rear pads"},
		},
		{
			name: "price range",
			filter: fitment.SearchFilter{
				PriceMin: query.Some(26.0),
				PriceMax: query.Some(60.0),
			},
			wantTitle: []any{"Front brake pads", "OEM style pads"},
		},
		{
			name:      "position",
			filter:    fitment.SearchFilter{PositionID: query.Some(int64(2))},
			wantTitle: []any{"Rear pads"},
		},
		{
			name:      "no match",
			filter:    fitment.SearchFilter{MakeID: query.Some(int64(99))},
			wantTitle: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, fitment.TableKindData, table.Kind)
			assert.Equal(t, []string{
				"make", "model", "year", "trim", "brand", "part_type", "position", "drive", "listing_title", "price",
			}, table.Columns)
			assert.Equal(t, tt.wantTitle, columnValues(table, "listing_title"))
		})
	}
}

func TestFitmentRepository_Coverage(t *testing.T) {
	repo := newTestRepository(t)

	table, err := repo.Coverage(context.Background(), fitment.CoverageFilter{MakeID: query.Some(int64(1))})
	require.NoError(t, err)

	assert.Equal(t, []string{"brand_name", "part_type", "listing_count", "cheapest_price"}, table.Columns)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []any{"Bosch", "Rotor", int64(1), 89.5}, table.Rows[0])
	assert.Equal(t, []any{"MOOG", "Brake Pad", int64(1), 49.99}, table.Rows[1])
	assert.Equal(t, []any{"OEM Direct", "Brake Pad", int64(1), 30.0}, table.Rows[2])
}

func TestFitmentRepository_Reports(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	collisions, err := repo.AliasCollisions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, collisions.Len())
	assert.Equal(t, []any{"MOOG"}, columnValues(collisions, "alias_text"))
	assert.Equal(t, []any{int64(2)}, columnValues(collisions, "collision_count"))

	missing, err := repo.MissingMPN(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(4)}, columnValues(missing, "listing_id"))

	oem, err := repo.OEMMismatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(5)}, columnValues(oem, "listing_id"))
	assert.Equal(t, []any{
		"Title suggests OEM but brand does not match",
		"Potential OEM mismatch",
	}, columnValues(oem, "reason"))
}

func TestFitmentRepository_LookupAliases(t *testing.T) {
	repo := newTestRepository(t)

	table, err := repo.LookupAliases(context.Background(), []string{"MOOG", "ROBERT BOSCH", "BRAKE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alias_text", "canonical_value"}, table.Columns)
	assert.Equal(t, [][]any{
		{"BOSCH", "Robert Bosch"},
		{"MOOG", "Federal-Mogul"},
		{"MOOG", "Moog Inc"},
	}, table.Rows)

	_, err = repo.LookupAliases(context.Background(), nil)
	assert.ErrorIs(t, err, sqlbuilder.ErrNoTokens)
}

func TestFitmentRepository_SchemaAndPreview(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	names, err := repo.SchemaObjects(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "listing")
	assert.Contains(t, names, "brand_alias")
	assert.Equal(t, "view_normalizedfitment", names[len(names)-1])

	preview, err := repo.Preview(ctx, "listing")
	require.NoError(t, err)
	assert.Equal(t, 5, preview.Len())
	assert.Contains(t, preview.Columns, "mpn")

	count, err := repo.Count(ctx, fitment.TableListing)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestFitmentRepository_Lookups(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	makes, err := repo.Makes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []fitment.Option{{Label: "Ford", Value: "1"}, {Label: "Honda", Value: "2"}}, makes)

	models, err := repo.Models(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []fitment.Option{{Label: "F-150", Value: "10"}}, models)

	years, err := repo.Years(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2020}, years)

	trims, err := repo.Trims(ctx, 10, query.Some(2020))
	require.NoError(t, err)
	assert.Equal(t, []fitment.Option{{Label: "Lariat", Value: "101"}}, trims)

	allTrims, err := repo.Trims(ctx, 10, query.None[int]())
	require.NoError(t, err)
	assert.Len(t, allTrims, 2)

	brands, err := repo.Brands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 3)
}

func TestFitmentRepository_Diagnostics(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	ford := int64(1)

	viewCount, err := repo.ViewCount(ctx, ford, query.None[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(3), viewCount)

	raw, err := repo.RawListingCount(ctx, ford, query.Some(int64(10)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), raw)

	total, withTrim, err := repo.ListingTrimCoverage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, int64(4), withTrim)

	trims, err := repo.TrimIDs(ctx, ford, query.None[int64]())
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, trims)

	used, err := repo.ListingsForTrims(ctx, trims)
	require.NoError(t, err)
	assert.Equal(t, int64(3), used)
}

func TestFitmentRepository_RowCapHoldsWhenDriverReturnsMore(t *testing.T) {
	repo := newTestRepository(t)

	table, err := repo.run(context.Background(), sqlbuilder.Query{
		Name:  "uncapped",
		SQL:   "SELECT listing_id FROM listing ORDER BY listing_id",
		Args:  []any{},
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1)}, {int64(2)}}, table.Rows)
}

func TestFitmentRepository_MissingTable(t *testing.T) {
	db := openFixtureDB(t, dbtest.Schema[:8])
	repo := NewFitmentRepository(db, sqlbuilder.New(sqlbuilder.SQLite{}), 0, nil, logger.Nop())

	_, err := repo.AliasCollisions(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingObjectError(err))
}

func TestFitmentRepository_CanceledContext(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Search(ctx, fitment.SearchFilter{})
	assert.Error(t, err)
}

type recordingObserver struct {
	names     []string
	errs      int
	truncated []bool
}

func (o *recordingObserver) ObserveQuery(name string, _ time.Duration, _ int, truncated bool, err error) {
	o.names = append(o.names, name)
	o.truncated = append(o.truncated, truncated)
	if err != nil {
		o.errs++
	}
}

func TestFitmentRepository_TruncatedOnlyWhenRowsRemain(t *testing.T) {
	tests := []struct {
		name          string
		limit         uint64
		wantRows      int
		wantTruncated bool
	}{
		{"fewer rows than the cap", 10, 5, false},
		{"exactly the cap", 5, 5, false},
		{"one row past the cap", 4, 4, true},
		{"no cap", 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openFixtureDB(t, dbtest.Schema, dbtest.Rows)
			obs := &recordingObserver{}
			repo := NewFitmentRepository(db, sqlbuilder.New(sqlbuilder.SQLite{}), time.Second, obs, logger.Nop())

			table, err := repo.run(context.Background(), sqlbuilder.Query{
				Name:  "listings",
				SQL:   "SELECT listing_id FROM listing ORDER BY listing_id",
				Args:  []any{},
				Limit: tt.limit,
			})
			require.NoError(t, err)
			assert.Len(t, table.Rows, tt.wantRows)
			assert.Equal(t, []bool{tt.wantTruncated}, obs.truncated)
		})
	}
}

func TestFitmentRepository_ReportAtCapIsComplete(t *testing.T) {
	db := openFixtureDB(t, dbtest.Schema, dbtest.Rows)
	obs := &recordingObserver{}
	repo := NewFitmentRepository(db, sqlbuilder.New(sqlbuilder.SQLite{}), time.Second, obs, logger.Nop())

	table, err := repo.MissingMPN(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []bool{false}, obs.truncated)
}

func TestFitmentRepository_ObservesQueries(t *testing.T) {
	db := openFixtureDB(t, dbtest.Schema, dbtest.Rows)
	obs := &recordingObserver{}
	repo := NewFitmentRepository(db, sqlbuilder.New(sqlbuilder.SQLite{}), time.Second, obs, logger.Nop())

	_, err := repo.MissingMPN(context.Background())
	require.NoError(t, err)
	_, err = repo.Preview(context.Background(), "no_such_object")
	require.Error(t, err)

	assert.Equal(t, []string{"missing_mpn", "preview"}, obs.names)
	assert.Equal(t, 1, obs.errs)
}
