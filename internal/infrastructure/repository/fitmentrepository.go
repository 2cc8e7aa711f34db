package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/infrastructure/sqlbuilder"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/query"
	"github.com/orris-inc/fitment/internal/shared/utils/logutil"
)

const maxLoggedSQL = 300

// QueryObserver receives the outcome of every query the repository runs.
type QueryObserver interface {
	ObserveQuery(name string, duration time.Duration, rows int, truncated bool, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveQuery(string, time.Duration, int, bool, error) {}

// FitmentRepositoryImpl runs the queries rendered by sqlbuilder against the connection pool.
type FitmentRepositoryImpl struct {
	db       *gorm.DB
	builder  *sqlbuilder.Builder
	timeout  time.Duration
	observer QueryObserver
	logger   logger.Interface
}

// NewFitmentRepository creates the repository. A zero timeout leaves queries bounded only by ctx.
func NewFitmentRepository(
	db *gorm.DB,
	builder *sqlbuilder.Builder,
	timeout time.Duration,
	observer QueryObserver,
	log logger.Interface,
) *FitmentRepositoryImpl {
	if observer == nil {
		observer = nopObserver{}
	}
	return &FitmentRepositoryImpl{
		db:       db,
		builder:  builder,
		timeout:  timeout,
		observer: observer,
		logger:   log,
	}
}

var (
	_ fitment.Repository            = (*FitmentRepositoryImpl)(nil)
	_ fitment.DiagnosticsRepository = (*FitmentRepositoryImpl)(nil)
)

// run executes q and scans at most q.Limit rows. The result counts as truncated only when the
// driver had a further row to give. Rows are closed on every path.
func (r *FitmentRepositoryImpl) run(ctx context.Context, q sqlbuilder.Query) (*fitment.Table, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	table, truncated, err := r.scan(ctx, q)
	r.observer.ObserveQuery(q.Name, time.Since(start), table.Len(), truncated, err)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("resource exhausted: no result within %s: %w", r.timeout, err)
		}
		r.logger.Errorw("fitment query failed",
			"query", q.Name,
			"sql", logutil.TruncateForLog(q.SQL, maxLoggedSQL),
			"error", err,
		)
		return nil, fmt.Errorf("failed to run %s query: %w", q.Name, err)
	}

	r.logger.Debugw("fitment query completed",
		"query", q.Name,
		"rows", table.Len(),
		"truncated", truncated,
		"duration", time.Since(start),
	)
	return table, nil
}

func (r *FitmentRepositoryImpl) scan(ctx context.Context, q sqlbuilder.Query) (*fitment.Table, bool, error) {
	rows, err := r.db.WithContext(ctx).Raw(q.SQL, q.Args...).Rows()
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, false, err
	}

	columns := make([]string, len(columnTypes))
	numeric := make([]bool, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = strings.ToLower(ct.Name())
		numeric[i] = isNumericType(ct.DatabaseTypeName())
	}

	var (
		out       [][]any
		truncated bool
	)
	for rows.Next() {
		if q.Limit > 0 && uint64(len(out)) >= q.Limit {
			truncated = true
			break
		}

		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, false, err
		}
		for i, v := range values {
			values[i] = normalize(v, numeric[i])
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return fitment.NewDataTable(columns, out), truncated, nil
}

func isNumericType(name string) bool {
	switch strings.ToUpper(name) {
	case "DECIMAL", "NUMERIC", "NUMBER", "FLOAT", "DOUBLE", "REAL":
		return true
	default:
		return false
	}
}

// normalize turns driver byte slices into strings, or numbers for decimal columns.
func normalize(v any, numeric bool) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if numeric {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func (r *FitmentRepositoryImpl) build(q sqlbuilder.Query, err error) func(context.Context) (*fitment.Table, error) {
	return func(ctx context.Context) (*fitment.Table, error) {
		if err != nil {
			return nil, err
		}
		return r.run(ctx, q)
	}
}

func (r *FitmentRepositoryImpl) Search(ctx context.Context, filter fitment.SearchFilter) (*fitment.Table, error) {
	return r.build(r.builder.Search(filter))(ctx)
}

func (r *FitmentRepositoryImpl) Coverage(ctx context.Context, filter fitment.CoverageFilter) (*fitment.Table, error) {
	return r.build(r.builder.Coverage(filter))(ctx)
}

func (r *FitmentRepositoryImpl) LookupAliases(ctx context.Context, tokens []string) (*fitment.Table, error) {
	return r.build(r.builder.AliasLookup(tokens))(ctx)
}

func (r *FitmentRepositoryImpl) AliasCollisions(ctx context.Context) (*fitment.Table, error) {
	return r.build(r.builder.AliasCollisions())(ctx)
}

func (r *FitmentRepositoryImpl) MissingMPN(ctx context.Context) (*fitment.Table, error) {
	return r.build(r.builder.MissingMPN())(ctx)
}

func (r *FitmentRepositoryImpl) OEMMismatches(ctx context.Context) (*fitment.Table, error) {
	return r.build(r.builder.OEMMismatches())(ctx)
}

func (r *FitmentRepositoryImpl) Preview(ctx context.Context, name string) (*fitment.Table, error) {
	return r.build(r.builder.Preview(name))(ctx)
}

// SchemaObjects returns table names followed by view names, as stored in the catalog.
func (r *FitmentRepositoryImpl) SchemaObjects(ctx context.Context) ([]string, error) {
	tables, err := r.build(r.builder.ListTables())(ctx)
	if err != nil {
		return nil, err
	}
	views, err := r.build(r.builder.ListViews())(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, tables.Len()+views.Len())
	for _, t := range []*fitment.Table{tables, views} {
		for _, row := range t.Rows {
			if len(row) > 0 && row[0] != nil {
				names = append(names, fmt.Sprint(row[0]))
			}
		}
	}
	return names, nil
}

func (r *FitmentRepositoryImpl) Count(ctx context.Context, table string) (int64, error) {
	return r.scalar(ctx)(r.builder.Count(table))
}

func (r *FitmentRepositoryImpl) Makes(ctx context.Context) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.Makes())
}

func (r *FitmentRepositoryImpl) Models(ctx context.Context, makeID int64) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.ModelsByMake(makeID))
}

func (r *FitmentRepositoryImpl) Years(ctx context.Context, modelID int64) ([]int, error) {
	table, err := r.build(r.builder.YearsByModel(modelID))(ctx)
	if err != nil {
		return nil, err
	}
	years := make([]int, 0, table.Len())
	for _, row := range table.Rows {
		if y, ok := toInt64(row[0]); ok {
			years = append(years, int(y))
		}
	}
	return years, nil
}

func (r *FitmentRepositoryImpl) Trims(ctx context.Context, modelID int64, year query.Optional[int]) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.TrimsByModel(modelID, year))
}

func (r *FitmentRepositoryImpl) PartTypes(ctx context.Context) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.PartTypes())
}

func (r *FitmentRepositoryImpl) Positions(ctx context.Context) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.Positions())
}

func (r *FitmentRepositoryImpl) Drives(ctx context.Context) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.Drives())
}

func (r *FitmentRepositoryImpl) Brands(ctx context.Context) ([]fitment.Option, error) {
	return r.options(ctx)(r.builder.Brands())
}

func (r *FitmentRepositoryImpl) ViewCount(ctx context.Context, makeID int64, modelID query.Optional[int64]) (int64, error) {
	return r.scalar(ctx)(r.builder.ViewCount(makeID, modelID))
}

func (r *FitmentRepositoryImpl) RawListingCount(ctx context.Context, makeID int64, modelID query.Optional[int64]) (int64, error) {
	return r.scalar(ctx)(r.builder.RawListingCount(makeID, modelID))
}

func (r *FitmentRepositoryImpl) ListingTrimCoverage(ctx context.Context) (int64, int64, error) {
	table, err := r.build(r.builder.ListingTrimCoverage())(ctx)
	if err != nil {
		return 0, 0, err
	}
	if table.Len() == 0 || len(table.Rows[0]) < 2 {
		return 0, 0, nil
	}
	total, _ := toInt64(table.Rows[0][0])
	withTrim, _ := toInt64(table.Rows[0][1])
	return total, withTrim, nil
}

func (r *FitmentRepositoryImpl) TrimIDs(ctx context.Context, makeID int64, modelID query.Optional[int64]) ([]int64, error) {
	table, err := r.build(r.builder.TrimsForMakeModel(makeID, modelID))(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, table.Len())
	for _, row := range table.Rows {
		if id, ok := toInt64(row[0]); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *FitmentRepositoryImpl) ListingsForTrims(ctx context.Context, trimIDs []int64) (int64, error) {
	return r.scalar(ctx)(r.builder.ListingsForTrims(trimIDs))
}

func (r *FitmentRepositoryImpl) scalar(ctx context.Context) func(sqlbuilder.Query, error) (int64, error) {
	return func(q sqlbuilder.Query, err error) (int64, error) {
		table, err := r.build(q, err)(ctx)
		if err != nil {
			return 0, err
		}
		if table.Len() == 0 || len(table.Rows[0]) == 0 {
			return 0, nil
		}
		n, ok := toInt64(table.Rows[0][0])
		if !ok {
			return 0, fmt.Errorf("%s query returned non-numeric count %v", q.Name, table.Rows[0][0])
		}
		return n, nil
	}
}

func (r *FitmentRepositoryImpl) options(ctx context.Context) func(sqlbuilder.Query, error) ([]fitment.Option, error) {
	return func(q sqlbuilder.Query, err error) ([]fitment.Option, error) {
		table, err := r.build(q, err)(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]fitment.Option, 0, table.Len())
		for _, row := range table.Rows {
			if len(row) < 2 || row[0] == nil {
				continue
			}
			opts = append(opts, fitment.Option{
				Value: formatValue(row[0]),
				Label: formatValue(row[1]),
			})
		}
		return opts, nil
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
