package api

import (
	"context"
	"fmt"
	"net/url"

	json "github.com/json-iterator/go"
	"github.com/zfogg/resep/pkg/client"
	"github.com/zfogg/resep/pkg/logger"
)

// GetReviews fetches every review left on a recipe
func GetReviews(ctx context.Context, recipeID string) ([]Review, error) {
	logger.Debug("Fetching reviews", "recipe_id", recipeID)

	env, err := decodeResponse(client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/v1/recipes/" + url.PathEscape(recipeID) + "/reviews"))
	if err != nil {
		return nil, err
	}

	reviews, err := decodeList[Review](env)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview posts a review on a recipe
func CreateReview(ctx context.Context, recipeID string, input ReviewInput) (*Review, error) {
	logger.Debug("Creating review", "recipe_id", recipeID, "rating", input.Rating)

	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	env, err := decodeResponse(client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/v1/recipes/" + url.PathEscape(recipeID) + "/reviews"))
	if err != nil {
		return nil, err
	}

	if !env.hasData() {
		return &Review{
			RecipeID:       recipeID,
			UserIdentifier: input.UserIdentifier,
			Username:       input.Username,
			Rating:         input.Rating,
			Comment:        input.Comment,
		}, nil
	}

	var review Review
	if err := json.Unmarshal(env.Data, &review); err != nil {
		return nil, fmt.Errorf("failed to decode review: %w", err)
	}
	return &review, nil
}
