package usecases

import (
	"context"
	"sync"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/query"
)

type mockRepository struct {
	SearchFunc          func(ctx context.Context, filter fitment.SearchFilter) (*fitment.Table, error)
	CoverageFunc        func(ctx context.Context, filter fitment.CoverageFilter) (*fitment.Table, error)
	LookupAliasesFunc   func(ctx context.Context, tokens []string) (*fitment.Table, error)
	AliasCollisionsFunc func(ctx context.Context) (*fitment.Table, error)
	MissingMPNFunc      func(ctx context.Context) (*fitment.Table, error)
	OEMMismatchesFunc   func(ctx context.Context) (*fitment.Table, error)
	SchemaObjectsFunc   func(ctx context.Context) ([]string, error)
	PreviewFunc         func(ctx context.Context, name string) (*fitment.Table, error)
	CountFunc           func(ctx context.Context, table string) (int64, error)
	OptionsFunc         func(ctx context.Context, lookup string) ([]fitment.Option, error)
	ModelsFunc          func(ctx context.Context, makeID int64) ([]fitment.Option, error)
	YearsFunc           func(ctx context.Context, modelID int64) ([]int, error)
	TrimsFunc           func(ctx context.Context, modelID int64, year query.Optional[int]) ([]fitment.Option, error)
}

var emptyTable = fitment.NewDataTable([]string{"a"}, nil)

func (m *mockRepository) Search(ctx context.Context, filter fitment.SearchFilter) (*fitment.Table, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return emptyTable, nil
}

func (m *mockRepository) Coverage(ctx context.Context, filter fitment.CoverageFilter) (*fitment.Table, error) {
	if m.CoverageFunc != nil {
		return m.CoverageFunc(ctx, filter)
	}
	return emptyTable, nil
}

func (m *mockRepository) LookupAliases(ctx context.Context, tokens []string) (*fitment.Table, error) {
	if m.LookupAliasesFunc != nil {
		return m.LookupAliasesFunc(ctx, tokens)
	}
	return emptyTable, nil
}

func (m *mockRepository) AliasCollisions(ctx context.Context) (*fitment.Table, error) {
	if m.AliasCollisionsFunc != nil {
		return m.AliasCollisionsFunc(ctx)
	}
	return emptyTable, nil
}

func (m *mockRepository) MissingMPN(ctx context.Context) (*fitment.Table, error) {
	if m.MissingMPNFunc != nil {
		return m.MissingMPNFunc(ctx)
	}
	return emptyTable, nil
}

func (m *mockRepository) OEMMismatches(ctx context.Context) (*fitment.Table, error) {
	if m.OEMMismatchesFunc != nil {
		return m.OEMMismatchesFunc(ctx)
	}
	return emptyTable, nil
}

func (m *mockRepository) SchemaObjects(ctx context.Context) ([]string, error) {
	if m.SchemaObjectsFunc != nil {
		return m.SchemaObjectsFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) Preview(ctx context.Context, name string) (*fitment.Table, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, name)
	}
	return emptyTable, nil
}

func (m *mockRepository) Count(ctx context.Context, table string) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, table)
	}
	return 0, nil
}

func (m *mockRepository) options(ctx context.Context, lookup string) ([]fitment.Option, error) {
	if m.OptionsFunc != nil {
		return m.OptionsFunc(ctx, lookup)
	}
	return nil, nil
}

func (m *mockRepository) Makes(ctx context.Context) ([]fitment.Option, error) {
	return m.options(ctx, LookupMakes)
}

func (m *mockRepository) PartTypes(ctx context.Context) ([]fitment.Option, error) {
	return m.options(ctx, LookupPartTypes)
}

func (m *mockRepository) Positions(ctx context.Context) ([]fitment.Option, error) {
	return m.options(ctx, LookupPositions)
}

func (m *mockRepository) Drives(ctx context.Context) ([]fitment.Option, error) {
	return m.options(ctx, LookupDrives)
}

func (m *mockRepository) Brands(ctx context.Context) ([]fitment.Option, error) {
	return m.options(ctx, LookupBrands)
}

func (m *mockRepository) Models(ctx context.Context, makeID int64) ([]fitment.Option, error) {
	if m.ModelsFunc != nil {
		return m.ModelsFunc(ctx, makeID)
	}
	return nil, nil
}

func (m *mockRepository) Years(ctx context.Context, modelID int64) ([]int, error) {
	if m.YearsFunc != nil {
		return m.YearsFunc(ctx, modelID)
	}
	return nil, nil
}

func (m *mockRepository) Trims(ctx context.Context, modelID int64, year query.Optional[int]) ([]fitment.Option, error) {
	if m.TrimsFunc != nil {
		return m.TrimsFunc(ctx, modelID, year)
	}
	return nil, nil
}

type mockDiagnostics struct {
	viewCount   int64
	rawCount    int64
	total       int64
	withTrim    int64
	trimIDs     []int64
	usedByTrims int64
	err         error
	calls       []string
}

func (m *mockDiagnostics) ViewCount(context.Context, int64, query.Optional[int64]) (int64, error) {
	m.calls = append(m.calls, "view_count")
	return m.viewCount, m.err
}

func (m *mockDiagnostics) RawListingCount(context.Context, int64, query.Optional[int64]) (int64, error) {
	m.calls = append(m.calls, "raw_listing_count")
	return m.rawCount, nil
}

func (m *mockDiagnostics) ListingTrimCoverage(context.Context) (int64, int64, error) {
	m.calls = append(m.calls, "listing_trim_coverage")
	return m.total, m.withTrim, nil
}

func (m *mockDiagnostics) TrimIDs(context.Context, int64, query.Optional[int64]) ([]int64, error) {
	m.calls = append(m.calls, "trim_ids")
	return m.trimIDs, nil
}

func (m *mockDiagnostics) ListingsForTrims(context.Context, []int64) (int64, error) {
	m.calls = append(m.calls, "listings_for_trims")
	return m.usedByTrims, nil
}

type mockProber struct {
	probed []fitment.SearchFilter
}

func (m *mockProber) Probe(_ context.Context, filter fitment.SearchFilter) {
	m.probed = append(m.probed, filter)
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]any
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]any{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]fitment.Option:
		*d = v.([]fitment.Option)
	case *fitment.Stats:
		*d = v.(fitment.Stats)
	}
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

// recordingLogger keeps the messages of warnings and errors.
type recordingLogger struct {
	warnings []string
	errors   []string
}

func (l *recordingLogger) Debug(string, ...any)               {}
func (l *recordingLogger) Info(string, ...any)                {}
func (l *recordingLogger) Warn(msg string, _ ...any)          { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Error(msg string, _ ...any)         { l.errors = append(l.errors, msg) }
func (l *recordingLogger) With(...any) logger.Interface       { return l }
func (l *recordingLogger) Named(string) logger.Interface      { return l }
func (l *recordingLogger) Debugw(string, ...interface{})      {}
func (l *recordingLogger) Infow(string, ...interface{})       {}
func (l *recordingLogger) Warnw(msg string, _ ...interface{}) { l.warnings = append(l.warnings, msg) }
func (l *recordingLogger) Errorw(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}
