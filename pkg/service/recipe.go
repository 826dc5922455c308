package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/catalog"
	clierrors "github.com/zfogg/resep/pkg/errors"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/output"
	"github.com/zfogg/resep/pkg/prompter"
)

// ListOptions selects which recipes to list
type ListOptions struct {
	Category string
	Search   string
	Page     int
	Limit    int
	// All drains every page instead of fetching one
	All bool
}

// RecipeService browses and edits the catalog
type RecipeService struct {
	app *App
}

// NewRecipeService creates a new recipe service
func NewRecipeService(app *App) *RecipeService {
	return &RecipeService{app: app}
}

// Fetch returns the recipes selected by opts
func (s *RecipeService) Fetch(ctx context.Context, opts ListOptions) ([]api.Recipe, *api.Pagination, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.app.PageSize
	}

	if opts.All {
		recipes, err := catalog.DrainAll(ctx, func(ctx context.Context, page int) (catalog.Page[api.Recipe], error) {
			resp, err := s.app.Remote.ListRecipes(ctx, api.RecipeListParams{
				Page:     page,
				Limit:    limit,
				Category: opts.Category,
				Search:   opts.Search,
			})
			if err != nil {
				return catalog.Page[api.Recipe]{}, err
			}
			return catalog.Page[api.Recipe]{Items: resp.Recipes, Pagination: resp.Pagination}, nil
		})
		return recipes, nil, err
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	resp, err := s.app.Remote.ListRecipes(ctx, api.RecipeListParams{
		Page:     page,
		Limit:    limit,
		Category: opts.Category,
		Search:   opts.Search,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp.Recipes, resp.Pagination, nil
}

// List prints the recipes selected by opts
func (s *RecipeService) List(ctx context.Context, opts ListOptions) error {
	recipes, pagination, err := s.Fetch(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	if len(recipes) == 0 {
		formatter.PrintInfo("Tidak ada resep")
		return nil
	}

	if err := output.PrintTable(formatter.RecipeHeaders, formatter.RecipeRows(recipes), recipes); err != nil {
		return err
	}

	if pagination != nil && output.GetOutputFormat() != output.FormatJSON {
		output.Printf("\nPage %d of %d (%d recipe%s)\n",
			pagination.Page, pagination.TotalPages, pagination.Total, pluralize(pagination.Total))
	}
	return nil
}

// Show prints one recipe with its reviews
func (s *RecipeService) Show(ctx context.Context, id string) error {
	recipe, err := s.app.Remote.Recipe(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load recipe %s: %w", id, err)
	}

	list, err := s.app.Remote.Reviews(ctx, id)
	if err != nil {
		formatter.PrintWarning("Could not load reviews: %v", err)
	}

	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", map[string]interface{}{
			"recipe":    recipe,
			"reviews":   list,
			"favorited": s.app.Favorites.Has(recipe.ID),
		})
	}

	s.renderRecipe(recipe, list)
	return nil
}

func (s *RecipeService) renderRecipe(r *api.Recipe, list []api.Review) {
	star := ""
	if s.app.Favorites.Has(r.ID) {
		star = " ♥"
	}

	formatter.Bold.Fprintf(output.Writer(), "%s%s\n", r.Name, star)
	output.Printf("%s · %s · %d porsi · persiapan %s · masak %s\n",
		r.Category, orDash(r.Difficulty), r.Servings, formatter.Minutes(r.PrepTime), formatter.Minutes(r.CookTime))
	if r.ReviewCount > 0 {
		output.Printf("%s %.1f (%d ulasan)\n", formatter.Stars(int(r.AverageRating+0.5)), r.AverageRating, r.ReviewCount)
	}
	if r.Description != "" {
		output.Printf("\n%s\n", r.Description)
	}

	if len(r.Ingredients) > 0 {
		output.Printf("\nBahan:\n")
		for _, ing := range r.Ingredients {
			output.Printf("  - %s %s\n", strings.TrimSpace(ing.Quantity), ing.Name)
		}
	}

	if steps := r.NonEmptySteps(); len(steps) > 0 {
		output.Printf("\nLangkah:\n")
		for i, step := range steps {
			output.Printf("  %d. %s\n", i+1, step)
		}
	}

	if len(list) > 0 {
		output.Printf("\nUlasan:\n")
		for _, rv := range list {
			name := rv.Username
			if name == "" {
				name = "Anonim"
			}
			output.Printf("  %s %s (%s)\n", formatter.Stars(rv.Rating), name, formatter.Date(rv.CreatedAt))
			if rv.Comment != "" {
				output.Printf("    %s\n", rv.Comment)
			}
		}
	}
}

// Create posts a new recipe
func (s *RecipeService) Create(ctx context.Context, input api.RecipeInput) (*api.Recipe, error) {
	recipe, err := s.app.Remote.CreateRecipe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	formatter.PrintSuccess("Resep berhasil dibuat! (%s)", recipe.ID)
	return recipe, nil
}

// Edit replaces recipe id with input
func (s *RecipeService) Edit(ctx context.Context, id string, input api.RecipeInput) (*api.Recipe, error) {
	recipe, err := s.app.Remote.UpdateRecipe(ctx, id, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe %s: %w", id, err)
	}
	formatter.PrintSuccess("Resep berhasil diperbarui!")
	return recipe, nil
}

// AddReview posts a review as the local user
func (s *RecipeService) AddReview(ctx context.Context, recipeID string, rating int, comment string) (*api.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, clierrors.ValidationError("rating", "must be between 1 and 5")
	}

	profile := s.app.Identity.Profile()
	review, err := s.app.Remote.CreateReview(ctx, recipeID, api.ReviewInput{
		UserIdentifier: profile.Identifier,
		Username:       profile.Username,
		Rating:         rating,
		Comment:        strings.TrimSpace(comment),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post review: %w", err)
	}

	formatter.PrintSuccess("Ulasan terkirim %s", formatter.Stars(rating))
	return review, nil
}

// InputFromRecipe starts an edit from an existing recipe
func InputFromRecipe(r *api.Recipe) api.RecipeInput {
	return api.RecipeInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		IsFeatured:  r.IsFeatured,
		Ingredients: append([]api.Ingredient(nil), r.Ingredients...),
		Steps:       r.NonEmptySteps(),
	}
}

// PromptRecipe asks for every recipe field, offering base's values as
// defaults. Ingredient and step lists are replaced only if new ones are
// entered.
func PromptRecipe(p *prompter.Prompter, base api.RecipeInput) (api.RecipeInput, error) {
	in := base
	var err error

	if in.Name, err = p.StringDefault("Nama resep: ", base.Name); err != nil {
		return in, err
	}

	categories := []string{api.CategoryMakanan, api.CategoryMinuman}
	idx, err := p.Select("Kategori:", categories)
	if err != nil {
		return in, err
	}
	in.Category = categories[idx]

	if in.Description, err = p.StringDefault("Deskripsi: ", base.Description); err != nil {
		return in, err
	}
	if in.ImageURL, err = p.StringDefault("URL gambar: ", base.ImageURL); err != nil {
		return in, err
	}
	if in.PrepTime, err = p.Int("Waktu persiapan (menit): ", base.PrepTime); err != nil {
		return in, err
	}
	if in.CookTime, err = p.Int("Waktu memasak (menit): ", base.CookTime); err != nil {
		return in, err
	}
	if in.Servings, err = p.Int("Porsi: ", max(base.Servings, 1)); err != nil {
		return in, err
	}
	if in.Difficulty, err = p.StringDefault("Tingkat kesulitan: ", base.Difficulty); err != nil {
		return in, err
	}

	lines, err := p.Lines("Bahan (jumlah | nama)", 50)
	if err != nil {
		return in, err
	}
	if len(lines) > 0 {
		in.Ingredients = parseIngredients(lines)
	}

	steps, err := p.Lines("Langkah", 50)
	if err != nil {
		return in, err
	}
	if len(steps) > 0 {
		in.Steps = steps
	}

	return in, nil
}

// parseIngredients reads "quantity | name" lines; a line without a
// separator is a name alone
func parseIngredients(lines []string) []api.Ingredient {
	out := make([]api.Ingredient, 0, len(lines))
	for _, line := range lines {
		qty, name, ok := strings.Cut(line, "|")
		if !ok {
			out = append(out, api.Ingredient{Name: strings.TrimSpace(line)})
			continue
		}
		out = append(out, api.Ingredient{
			Name:     strings.TrimSpace(name),
			Quantity: strings.TrimSpace(qty),
		})
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
