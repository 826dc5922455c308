package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/zfogg/resep/pkg/client"
	"github.com/zfogg/resep/pkg/logger"
)

// GetRecipes fetches one page of the recipe catalog
func GetRecipes(ctx context.Context, params RecipeListParams) (*RecipeListResponse, error) {
	logger.Debug("Fetching recipes", "page", params.Page, "limit", params.Limit, "category", params.Category)

	req := client.GetClient().R().SetContext(ctx)
	if params.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(params.Limit))
	}
	if params.Category != "" {
		req.SetQueryParam("category", params.Category)
	}
	if params.Search != "" {
		req.SetQueryParam("search", params.Search)
	}

	env, err := decodeResponse(req.Get("/api/v1/recipes"))
	if err != nil {
		return nil, err
	}

	recipes, err := decodeList[Recipe](env)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	return &RecipeListResponse{
		Recipes:    recipes,
		Pagination: env.Pagination,
	}, nil
}

// GetRecipe fetches a single recipe by id
func GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	logger.Debug("Fetching recipe", "recipe_id", id)

	env, err := decodeResponse(client.GetClient().
		R().
		SetContext(ctx).
		Get("/api/v1/recipes/" + url.PathEscape(id)))
	if err != nil {
		return nil, err
	}

	return decodeRecipe(env)
}

// CreateRecipe creates a recipe
func CreateRecipe(ctx context.Context, input RecipeInput) (*Recipe, error) {
	logger.Debug("Creating recipe", "name", input.Name, "category", input.Category)

	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	env, err := decodeResponse(client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/v1/recipes"))
	if err != nil {
		return nil, err
	}

	return decodeRecipe(env)
}

// UpdateRecipe replaces a recipe's fields
func UpdateRecipe(ctx context.Context, id string, input RecipeInput) (*Recipe, error) {
	logger.Debug("Updating recipe", "recipe_id", id)

	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	env, err := decodeResponse(client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Put("/api/v1/recipes/" + url.PathEscape(id)))
	if err != nil {
		return nil, err
	}

	return decodeRecipe(env)
}

func decodeRecipe(env *envelope) (*Recipe, error) {
	if !env.hasData() {
		return nil, &APIError{Message: "recipe missing from response"}
	}

	var recipe Recipe
	if err := json.Unmarshal(env.Data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	return &recipe, nil
}
