package api

import "context"

// Remote exposes the package-level endpoint functions as a value so
// pipelines can depend on small interfaces instead of the HTTP client.
type Remote struct{}

// ListRecipes fetches one catalog page
func (Remote) ListRecipes(ctx context.Context, params RecipeListParams) (*RecipeListResponse, error) {
	return GetRecipes(ctx, params)
}

// Recipe fetches one recipe
func (Remote) Recipe(ctx context.Context, id string) (*Recipe, error) {
	return GetRecipe(ctx, id)
}

// Reviews fetches a recipe's reviews
func (Remote) Reviews(ctx context.Context, recipeID string) ([]Review, error) {
	return GetReviews(ctx, recipeID)
}

// CreateRecipe creates a recipe
func (Remote) CreateRecipe(ctx context.Context, input RecipeInput) (*Recipe, error) {
	return CreateRecipe(ctx, input)
}

// UpdateRecipe replaces a recipe
func (Remote) UpdateRecipe(ctx context.Context, id string, input RecipeInput) (*Recipe, error) {
	return UpdateRecipe(ctx, id, input)
}

// CreateReview posts a review
func (Remote) CreateReview(ctx context.Context, recipeID string, input ReviewInput) (*Review, error) {
	return CreateReview(ctx, recipeID, input)
}
