package favorites

import (
	"context"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps in-flight recipe lookups
const DefaultConcurrency = 8

// RecipeFetcher fetches one recipe by id
type RecipeFetcher interface {
	Recipe(ctx context.Context, id string) (*api.Recipe, error)
}

// Materializer resolves favorite ids into full recipes
type Materializer struct {
	fetcher     RecipeFetcher
	concurrency int
}

// NewMaterializer creates a materializer. A non-positive concurrency selects
// DefaultConcurrency.
func NewMaterializer(fetcher RecipeFetcher, concurrency int) *Materializer {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Materializer{fetcher: fetcher, concurrency: concurrency}
}

// Materialize fetches every id independently and returns the recipes that
// resolved, in input order. A failed or empty lookup is logged and skipped;
// it never fails the batch.
func (m *Materializer) Materialize(ctx context.Context, ids []string) []api.Recipe {
	if len(ids) == 0 {
		return []api.Recipe{}
	}

	results := make([]*api.Recipe, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			recipe, err := m.fetcher.Recipe(gctx, id)
			if err != nil {
				logger.Warn("Failed to fetch favorite recipe", "recipe_id", id, "error", err)
				return nil
			}
			if recipe == nil {
				logger.Warn("Favorite recipe missing", "recipe_id", id)
				return nil
			}
			results[i] = recipe
			return nil
		})
	}
	_ = g.Wait()

	out := make([]api.Recipe, 0, len(ids))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	logger.Debug("Materialized favorites", "requested", len(ids), "resolved", len(out))
	return out
}
