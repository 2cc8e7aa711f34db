package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/application/fitment/dto"
	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

type SearchFitmentUseCase struct {
	repo   fitment.Repository
	prober SearchProber
	logger logger.Interface
}

// NewSearchFitmentUseCase creates the search use case. prober may be nil when diagnostics are off.
func NewSearchFitmentUseCase(
	repo fitment.Repository,
	prober SearchProber,
	logger logger.Interface,
) *SearchFitmentUseCase {
	return &SearchFitmentUseCase{
		repo:   repo,
		prober: prober,
		logger: logger,
	}
}

// Execute runs the search. Empty results become guidance messages and failures become error tables.
func (uc *SearchFitmentUseCase) Execute(ctx context.Context, req dto.SearchRequest) *fitment.Table {
	filter := req.ToFilter()

	uc.logger.Debugw("executing fitment search",
		"make_id", filter.MakeID,
		"model_id", filter.ModelID,
		"year", filter.Year,
		"trim_id", filter.TrimID,
		"brand_ids", filter.BrandIDs,
	)

	table, err := uc.repo.Search(ctx, filter)
	if err != nil {
		uc.logger.Errorw("fitment search failed", "error", err)
		return fitment.ErrorTable(err)
	}
	if !table.IsEmpty() {
		return table
	}

	if uc.prober != nil {
		uc.prober.Probe(ctx, filter)
	}

	total, err := uc.repo.Count(ctx, fitment.TableListing)
	if err != nil {
		uc.logger.Errorw("failed to check listing count", "error", err)
	} else if total == 0 {
		return fitment.MessageTable(msgNoListings)
	}

	if filter.FiltersVehicle() {
		return fitment.MessageTable(MsgNoSearchResults + msgTrimHint)
	}
	return fitment.MessageTable(MsgNoSearchResults + msgRemoveFilters)
}
