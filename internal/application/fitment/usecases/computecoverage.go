package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

type ComputeCoverageUseCase struct {
	repo   fitment.Repository
	logger logger.Interface
}

func NewComputeCoverageUseCase(repo fitment.Repository, logger logger.Interface) *ComputeCoverageUseCase {
	return &ComputeCoverageUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ComputeCoverageUseCase) Execute(ctx context.Context, req dto.CoverageRequest) *fitment.Table {
	table, err := uc.repo.Coverage(ctx, req.ToFilter())
	if err != nil {
		uc.logger.Errorw("coverage query failed", "error", err)
		return fitment.ErrorTable(err)
	}
	if table.IsEmpty() {
		return fitment.MessageTable(MsgNoCoverage)
	}
	return table
}
