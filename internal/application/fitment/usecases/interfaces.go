package usecases

import (
	"context"

	"github.com/orris-inc/fitment/internal/domain/fitment"
)

// LookupCache holds option lists and header counters between requests.
type LookupCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// SearchProber explains an empty search in the logs. It never fails the search.
type SearchProber interface {
	Probe(ctx context.Context, filter fitment.SearchFilter)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (nopCache) Set(context.Context, string, any) error         { return nil }
