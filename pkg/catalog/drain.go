// Package catalog drains paginated remote listings.
package catalog

import (
	"context"
	"fmt"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/logger"
)

// DefaultPageSize balances round trips against response size when draining
// the whole catalog.
const DefaultPageSize = 50

// maxPages bounds a drain against a server that keeps reporting more pages
const maxPages = 10000

// Page is one response of a paginated listing
type Page[T any] struct {
	Items      []T
	Pagination *api.Pagination
}

// PageFunc fetches the page with the given 1-based number
type PageFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// DrainAll fetches pages 1, 2, ... in order and concatenates their items.
// It continues while the last response reports page < total_pages and stops
// when a response carries no pagination metadata. A failed page aborts the
// drain and the error is returned; items gathered so far are discarded.
func DrainAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if page > maxPages {
			return nil, fmt.Errorf("catalog drain exceeded %d pages", maxPages)
		}

		resp, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		all = append(all, resp.Items...)
		logger.Debug("Drained page", "page", page, "items", len(resp.Items), "total", len(all))

		if !resp.Pagination.HasMore() {
			break
		}
	}

	if all == nil {
		all = []T{}
	}
	return all, nil
}

// RecipeLister lists one page of recipes
type RecipeLister interface {
	ListRecipes(ctx context.Context, params api.RecipeListParams) (*api.RecipeListResponse, error)
}

// RecipePages adapts a RecipeLister into a PageFunc with a fixed page size.
// A non-positive pageSize selects DefaultPageSize.
func RecipePages(lister RecipeLister, pageSize int) PageFunc[api.Recipe] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return func(ctx context.Context, page int) (Page[api.Recipe], error) {
		resp, err := lister.ListRecipes(ctx, api.RecipeListParams{Page: page, Limit: pageSize})
		if err != nil {
			return Page[api.Recipe]{}, err
		}
		return Page[api.Recipe]{Items: resp.Recipes, Pagination: resp.Pagination}, nil
	}
}

// DrainRecipes drains the entire recipe catalog
func DrainRecipes(ctx context.Context, lister RecipeLister, pageSize int) ([]api.Recipe, error) {
	return DrainAll(ctx, RecipePages(lister, pageSize))
}
