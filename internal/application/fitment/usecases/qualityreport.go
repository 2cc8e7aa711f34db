package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/errors"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// Report names a data quality report.
type Report string

const (
	ReportAliasCollisions Report = "alias-collisions"
	ReportMissingMPN      Report = "missing-mpn"
	ReportOEMMismatches   Report = "oem-mismatches"
)

// Reports lists every data quality report in display order.
var Reports = []Report{ReportAliasCollisions, ReportMissingMPN, ReportOEMMismatches}

// ParseReport validates a report name.
func ParseReport(name string) (Report, error) {
	for _, r := range Reports {
		if string(r) == name {
			return r, nil
		}
	}
	return "", errors.NewValidationError(fmt.Sprintf("unknown report %q", name))
}

type RunQualityReportUseCase struct {
	repo   fitment.Repository
	logger logger.Interface
}

func NewRunQualityReportUseCase(repo fitment.Repository, logger logger.Interface) *RunQualityReportUseCase {
	return &RunQualityReportUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *RunQualityReportUseCase) Execute(ctx context.Context, report Report) *fitment.Table {
	switch report {
	case ReportAliasCollisions:
		return uc.aliasCollisions(ctx)
	case ReportMissingMPN:
		return uc.run(ctx, report, uc.repo.MissingMPN, MsgNoMissingMPN)
	case ReportOEMMismatches:
		return uc.run(ctx, report, uc.repo.OEMMismatches, MsgNoOEMMismatches)
	default:
		return fitment.ErrorTable(fmt.Errorf("unknown report %q", report))
	}
}

func (uc *RunQualityReportUseCase) aliasCollisions(ctx context.Context) *fitment.Table {
	table, err := uc.repo.AliasCollisions(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load alias collisions", "error", err)
		if errors.IsMissingObjectError(err) {
			return fitment.MessageTable(MsgAliasTableMissing, MsgAliasTableHint)
		}
		return fitment.ErrorTable(err)
	}
	if table.IsEmpty() {
		return fitment.MessageTable(MsgNoAliasCollisions)
	}
	return table
}

func (uc *RunQualityReportUseCase) run(
	ctx context.Context,
	report Report,
	query func(context.Context) (*fitment.Table, error),
	emptyMsg string,
) *fitment.Table {
	table, err := query(ctx)
	if err != nil {
		uc.logger.Errorw("quality report failed", "report", report, "error", err)
		return fitment.ErrorTable(err)
	}
	if table.IsEmpty() {
		return fitment.MessageTable(emptyMsg)
	}
	return table
}
