package fitment

import (
	"context"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/application/fitment/usecases"
	"github.com/orris-inc/fitment/internal/domain/fitment"
)

// Use case interfaces for the fitment handlers - enables unit testing with mocks.

type searchFitmentUseCase interface {
	Execute(ctx context.Context, req dto.SearchRequest) *fitment.Table
}

type computeCoverageUseCase interface {
	Execute(ctx context.Context, req dto.CoverageRequest) *fitment.Table
}

type runQualityReportUseCase interface {
	Execute(ctx context.Context, report usecases.Report) *fitment.Table
}

type schemaBrowserUseCase interface {
	ListTables(ctx context.Context) ([]string, error)
	Preview(ctx context.Context, name string) *fitment.Table
}

type lookupAliasesUseCase interface {
	Execute(ctx context.Context, text string) *fitment.Table
}

type lookupsUseCase interface {
	Makes(ctx context.Context) []fitment.Option
	Models(ctx context.Context, makeID string) []fitment.Option
	Years(ctx context.Context, modelID string) []int
	Trims(ctx context.Context, modelID, year string) []fitment.Option
	PartTypes(ctx context.Context) []fitment.Option
	Positions(ctx context.Context) []fitment.Option
	Drives(ctx context.Context) []fitment.Option
	Brands(ctx context.Context) []fitment.Option
}

type quickStatsUseCase interface {
	Execute(ctx context.Context) fitment.Stats
}

type messageRenderer interface {
	Render(text string) (string, error)
}
