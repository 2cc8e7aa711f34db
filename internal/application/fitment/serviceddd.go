package fitment

import (
	"context"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/application/fitment/usecases"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// ServiceDDD aggregates all fitment use cases
type ServiceDDD struct {
	searchUC   *usecases.SearchFitmentUseCase
	coverageUC *usecases.ComputeCoverageUseCase
	reportUC   *usecases.RunQualityReportUseCase
	schemaUC   *usecases.SchemaBrowserUseCase
	aliasesUC  *usecases.LookupAliasesUseCase
	lookupsUC  *usecases.GetLookupsUseCase
	statsUC    *usecases.GetQuickStatsUseCase
	logger     logger.Interface
}

// NewServiceDDD creates the fitment service. diagnostics may be nil to disable the empty search
// probe; cache may be nil to disable lookup caching.
func NewServiceDDD(
	repo fitment.Repository,
	diagnostics fitment.DiagnosticsRepository,
	cache usecases.LookupCache,
	logger logger.Interface,
) *ServiceDDD {
	var prober usecases.SearchProber
	if diagnostics != nil {
		prober = usecases.NewDiagnosticProbe(diagnostics, logger)
	}

	return &ServiceDDD{
		searchUC:   usecases.NewSearchFitmentUseCase(repo, prober, logger),
		coverageUC: usecases.NewComputeCoverageUseCase(repo, logger),
		reportUC:   usecases.NewRunQualityReportUseCase(repo, logger),
		schemaUC:   usecases.NewSchemaBrowserUseCase(repo, logger),
		aliasesUC:  usecases.NewLookupAliasesUseCase(repo, logger),
		lookupsUC:  usecases.NewGetLookupsUseCase(repo, cache, logger),
		statsUC:    usecases.NewGetQuickStatsUseCase(repo, cache, logger),
		logger:     logger,
	}
}

// Use case accessors for the HTTP handlers.

func (s *ServiceDDD) SearchUseCase() *usecases.SearchFitmentUseCase     { return s.searchUC }
func (s *ServiceDDD) CoverageUseCase() *usecases.ComputeCoverageUseCase { return s.coverageUC }
func (s *ServiceDDD) ReportUseCase() *usecases.RunQualityReportUseCase  { return s.reportUC }
func (s *ServiceDDD) SchemaUseCase() *usecases.SchemaBrowserUseCase     { return s.schemaUC }
func (s *ServiceDDD) AliasesUseCase() *usecases.LookupAliasesUseCase    { return s.aliasesUC }
func (s *ServiceDDD) LookupsUseCase() *usecases.GetLookupsUseCase       { return s.lookupsUC }
func (s *ServiceDDD) QuickStatsUseCase() *usecases.GetQuickStatsUseCase { return s.statsUC }

// SearchFitment runs a listing search
func (s *ServiceDDD) SearchFitment(ctx context.Context, req dto.SearchRequest) *fitment.Table {
	return s.searchUC.Execute(ctx, req)
}

// ComputeCoverage aggregates listings by brand and part type
func (s *ServiceDDD) ComputeCoverage(ctx context.Context, req dto.CoverageRequest) *fitment.Table {
	return s.coverageUC.Execute(ctx, req)
}

// RunReport runs one data quality report
func (s *ServiceDDD) RunReport(ctx context.Context, report usecases.Report) *fitment.Table {
	return s.reportUC.Execute(ctx, report)
}

// ListTables returns the project tables and views present in the store
func (s *ServiceDDD) ListTables(ctx context.Context) ([]string, error) {
	return s.schemaUC.ListTables(ctx)
}

// PreviewTable returns the first rows of a project table or view
func (s *ServiceDDD) PreviewTable(ctx context.Context, name string) *fitment.Table {
	return s.schemaUC.Preview(ctx, name)
}

// LookupAliases finds brand aliases for the words of text
func (s *ServiceDDD) LookupAliases(ctx context.Context, text string) *fitment.Table {
	return s.aliasesUC.Execute(ctx, text)
}

// QuickStats returns the header counters
func (s *ServiceDDD) QuickStats(ctx context.Context) fitment.Stats {
	return s.statsUC.Execute(ctx)
}
