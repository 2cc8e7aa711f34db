package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

const statsCacheKey = "stats"

type GetQuickStatsUseCase struct {
	repo   fitment.Repository
	cache  LookupCache
	logger logger.Interface
}

func NewGetQuickStatsUseCase(repo fitment.Repository, cache LookupCache, logger logger.Interface) *GetQuickStatsUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	return &GetQuickStatsUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Execute returns the listing, brand and trim counts; any failure yields all zeros.
func (uc *GetQuickStatsUseCase) Execute(ctx context.Context) fitment.Stats {
	var stats fitment.Stats
	if found, err := uc.cache.Get(ctx, statsCacheKey, &stats); err == nil && found {
		return stats
	}

	counts := make([]int64, 0, 3)
	for _, table := range []string{fitment.TableListing, fitment.TableBrand, fitment.TableTrim} {
		n, err := uc.repo.Count(ctx, table)
		if err != nil {
			uc.logger.Errorw("failed to get quick stats", "table", table, "error", err)
			return fitment.Stats{}
		}
		counts = append(counts, n)
	}

	stats = fitment.Stats{
		Listings: counts[0],
		Brands:   counts[1],
		Trims:    counts[2],
	}
	if err := uc.cache.Set(ctx, statsCacheKey, stats); err != nil {
		uc.logger.Warnw("stats cache write failed", "error", err)
	}
	return stats
}
