// Package reviews derives the local user's reviews from the catalog. The API
// has no query for reviews by author, so every recipe's reviews are fetched
// and filtered by user identifier.
package reviews

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/catalog"
	"github.com/zfogg/resep/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps in-flight review fetches
const DefaultConcurrency = 8

// Reconciled is a review by the local user with the recipe it belongs to
type Reconciled struct {
	api.Review
	RecipeName     string `json:"recipe_name"`
	RecipeID       string `json:"recipe_id"`
	RecipeImage    string `json:"recipe_image,omitempty"`
	RecipeCategory string `json:"recipe_category"`
}

// Stats summarises one reconciliation run
type Stats struct {
	RecipesChecked int `json:"recipes_checked"`
	ReviewsChecked int `json:"reviews_checked"`
	Matches        int `json:"matches"`
	FailedRecipes  int `json:"failed_recipes"`
}

// ReviewFetcher fetches the reviews of one recipe
type ReviewFetcher interface {
	Reviews(ctx context.Context, recipeID string) ([]api.Review, error)
}

// Source is the remote the reconciler reads from
type Source interface {
	catalog.RecipeLister
	ReviewFetcher
}

// Reconciler finds the local user's reviews across the whole catalog
type Reconciler struct {
	source      Source
	pageSize    int
	concurrency int
}

// Option configures a Reconciler
type Option func(*Reconciler)

// WithPageSize sets the catalog page size used while draining
func WithPageSize(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// WithConcurrency caps concurrent review fetches
func WithConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewReconciler creates a reconciler over source
func NewReconciler(source Source, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:      source,
		pageSize:    catalog.DefaultPageSize,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile returns every review whose user identifier equals
// userIdentifier, enriched with its recipe. Results follow catalog order,
// then the server's review order within a recipe. A recipe whose reviews
// cannot be fetched is logged and contributes nothing; only a failure to
// drain the catalog is returned. username is informational.
func (r *Reconciler) Reconcile(ctx context.Context, userIdentifier, username string) ([]Reconciled, Stats, error) {
	logger.Debug("Reconciling reviews", "identifier", userIdentifier, "username", username)

	recipes, err := catalog.DrainRecipes(ctx, r.source, r.pageSize)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to load recipe catalog: %w", err)
	}

	perRecipe := make([][]Reconciled, len(recipes))
	var reviewsChecked, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, recipe := range recipes {
		i, recipe := i, recipe
		g.Go(func() error {
			list, err := r.source.Reviews(gctx, recipe.ID)
			if err != nil {
				failed.Add(1)
				logger.Warn("Failed to fetch reviews", "recipe_id", recipe.ID, "error", err)
				return nil
			}
			reviewsChecked.Add(int64(len(list)))

			for _, review := range list {
				if review.UserIdentifier != userIdentifier {
					continue
				}
				perRecipe[i] = append(perRecipe[i], Reconciled{
					Review:         review,
					RecipeName:     recipe.Name,
					RecipeID:       recipe.ID,
					RecipeImage:    recipe.ImageURL,
					RecipeCategory: recipe.Category,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	out := []Reconciled{}
	for _, matches := range perRecipe {
		out = append(out, matches...)
	}

	stats := Stats{
		RecipesChecked: len(recipes),
		ReviewsChecked: int(reviewsChecked.Load()),
		Matches:        len(out),
		FailedRecipes:  int(failed.Load()),
	}
	logger.Info("Reviews reconciled",
		"recipes", stats.RecipesChecked,
		"reviews", stats.ReviewsChecked,
		"matches", stats.Matches,
		"failed", stats.FailedRecipes)

	return out, stats, nil
}
