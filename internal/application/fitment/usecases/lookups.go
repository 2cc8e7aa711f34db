package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
	"github.com/orris-inc/fitment/internal/shared/query"
)

// Cache keys of the parentless lookups.
const (
	LookupMakes     = "makes"
	LookupPartTypes = "part_types"
	LookupPositions = "positions"
	LookupDrives    = "drives"
	LookupBrands    = "brands"
)

// GetLookupsUseCase feeds the dashboard dropdowns. Failures are logged and yield empty lists.
type GetLookupsUseCase struct {
	repo   fitment.Repository
	cache  LookupCache
	logger logger.Interface
}

// NewGetLookupsUseCase creates the lookups use case; a nil cache disables caching.
func NewGetLookupsUseCase(repo fitment.Repository, cache LookupCache, logger logger.Interface) *GetLookupsUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	return &GetLookupsUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (uc *GetLookupsUseCase) Makes(ctx context.Context) []fitment.Option {
	return uc.cached(ctx, LookupMakes, uc.repo.Makes)
}

func (uc *GetLookupsUseCase) PartTypes(ctx context.Context) []fitment.Option {
	return uc.cached(ctx, LookupPartTypes, uc.repo.PartTypes)
}

func (uc *GetLookupsUseCase) Positions(ctx context.Context) []fitment.Option {
	return uc.cached(ctx, LookupPositions, uc.repo.Positions)
}

func (uc *GetLookupsUseCase) Drives(ctx context.Context) []fitment.Option {
	return uc.cached(ctx, LookupDrives, uc.repo.Drives)
}

func (uc *GetLookupsUseCase) Brands(ctx context.Context) []fitment.Option {
	return uc.cached(ctx, LookupBrands, uc.repo.Brands)
}

// Models lists the models of a make; an unset make yields no models.
func (uc *GetLookupsUseCase) Models(ctx context.Context, makeID string) []fitment.Option {
	id, ok := query.ParseID(makeID).Get()
	if !ok {
		return []fitment.Option{}
	}
	opts, err := uc.repo.Models(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to load models", "make_id", id, "error", err)
		return []fitment.Option{}
	}
	return opts
}

// Years lists the trim years of a model; an unset model yields no years.
func (uc *GetLookupsUseCase) Years(ctx context.Context, modelID string) []int {
	id, ok := query.ParseID(modelID).Get()
	if !ok {
		return []int{}
	}
	years, err := uc.repo.Years(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to load years", "model_id", id, "error", err)
		return []int{}
	}
	return years
}

// Trims lists the trims of a model, narrowed to year when one is given.
func (uc *GetLookupsUseCase) Trims(ctx context.Context, modelID, year string) []fitment.Option {
	id, ok := query.ParseID(modelID).Get()
	if !ok {
		return []fitment.Option{}
	}
	opts, err := uc.repo.Trims(ctx, id, query.ParseYearString(year))
	if err != nil {
		uc.logger.Errorw("failed to load trims", "model_id", id, "error", err)
		return []fitment.Option{}
	}
	return opts
}

func (uc *GetLookupsUseCase) cached(
	ctx context.Context,
	key string,
	load func(context.Context) ([]fitment.Option, error),
) []fitment.Option {
	var opts []fitment.Option
	found, err := uc.cache.Get(ctx, key, &opts)
	if err != nil {
		uc.logger.Warnw("lookup cache read failed", "lookup", key, "error", err)
	}
	if found && err == nil {
		return opts
	}

	opts, err = load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load lookup", "lookup", key, "error", err)
		return []fitment.Option{}
	}

	if err := uc.cache.Set(ctx, key, opts); err != nil {
		uc.logger.Warnw("lookup cache write failed", "lookup", key, "error", err)
	}
	return opts
}
