package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/domain/fitment"
	"github.com/orris-inc/fitment/internal/shared/logger"
)

// DiagnosticProbe runs count queries that explain why a make/model search came back empty.
type DiagnosticProbe struct {
	repo   fitment.DiagnosticsRepository
	logger logger.Interface
}

func NewDiagnosticProbe(repo fitment.DiagnosticsRepository, logger logger.Interface) *DiagnosticProbe {
	return &DiagnosticProbe{
		repo:   repo,
		logger: logger,
	}
}

// Probe only inspects searches that set a make. Every failure is logged and swallowed.
func (p *DiagnosticProbe) Probe(ctx context.Context, filter fitment.SearchFilter) {
	makeID, ok := filter.MakeID.Get()
	if !ok {
		return
	}
	modelID := filter.ModelID

	viewCount, err := p.repo.ViewCount(ctx, makeID, modelID)
	if err != nil {
		p.logger.Errorw("diagnostic query failed", "step", "view_count", "error", err)
		return
	}
	p.logger.Infow("diagnostic: rows in fitment view",
		"make_id", makeID,
		"model_id", modelID,
		"count", viewCount,
	)

	rawCount, err := p.repo.RawListingCount(ctx, makeID, modelID)
	if err != nil {
		p.logger.Errorw("diagnostic query failed", "step", "raw_listing_count", "error", err)
		return
	}
	p.logger.Infow("diagnostic: listings with matching trim in raw tables", "count", rawCount)
	if rawCount != 0 {
		return
	}

	total, withTrim, err := p.repo.ListingTrimCoverage(ctx)
	if err != nil {
		p.logger.Errorw("diagnostic query failed", "step", "listing_trim_coverage", "error", err)
		return
	}
	p.logger.Infow("diagnostic: listing trim coverage", "total_listings", total, "with_trim_id", withTrim)

	trimIDs, err := p.repo.TrimIDs(ctx, makeID, modelID)
	if err != nil {
		p.logger.Errorw("diagnostic query failed", "step", "trim_ids", "error", err)
		return
	}
	if len(trimIDs) == 0 {
		return
	}
	p.logger.Infow("diagnostic: available trim_ids for make/model", "trim_ids", trimIDs)

	used, err := p.repo.ListingsForTrims(ctx, trimIDs)
	if err != nil {
		p.logger.Errorw("diagnostic query failed", "step", "listings_for_trims", "error", err)
		return
	}
	p.logger.Infow("diagnostic: listings using these trim_ids", "count", used)

	if used == 0 && withTrim < total {
		p.logger.Warnw("diagnostic: listings without trim_id will not appear in make/model searches",
			"missing_trim_id", total-withTrim,
		)
	}
}
