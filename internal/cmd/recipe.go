package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/api"
	clierrors "github.com/zfogg/resep/pkg/errors"
	"github.com/zfogg/resep/pkg/prompter"
	"github.com/zfogg/resep/pkg/service"
)

var (
	recipeCategory string
	recipeSearch   string
	recipePage     int
	recipeLimit    int
	recipeAll      bool
)

var recipeCmd = &cobra.Command{
	Use:     "recipe",
	Aliases: []string{"resep"},
	Short:   "Recipe commands",
	Long:    "Browse, create and edit recipes",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if recipeCategory != "" && recipeCategory != api.CategoryMakanan && recipeCategory != api.CategoryMinuman {
			return clierrors.ValidationError("category", "must be makanan or minuman")
		}
		return withApp(func(app *service.App) error {
			return service.NewRecipeService(app).List(cmd.Context(), service.ListOptions{
				Category: recipeCategory,
				Search:   recipeSearch,
				Page:     recipePage,
				Limit:    recipeLimit,
				All:      recipeAll,
			})
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			return service.NewRecipeService(app).Show(cmd.Context(), args[0])
		})
	},
}

var recipeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a recipe interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			input, err := service.PromptRecipe(prompter.Default(), api.RecipeInput{Category: api.CategoryMakanan})
			if err != nil {
				return err
			}
			_, err = service.NewRecipeService(app).Create(cmd.Context(), input)
			return err
		})
	},
}

var recipeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a recipe interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			current, err := app.Remote.Recipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			input, err := service.PromptRecipe(prompter.Default(), service.InputFromRecipe(current))
			if err != nil {
				return err
			}
			_, err = service.NewRecipeService(app).Edit(cmd.Context(), args[0], input)
			return err
		})
	},
}

func init() {
	recipeListCmd.Flags().StringVarP(&recipeCategory, "category", "c", "", "Filter by category (makanan, minuman)")
	recipeListCmd.Flags().StringVarP(&recipeSearch, "search", "s", "", "Search recipe names")
	recipeListCmd.Flags().IntVar(&recipePage, "page", 1, "Page number")
	recipeListCmd.Flags().IntVar(&recipeLimit, "limit", 0, "Recipes per page (default from catalog.page_size)")
	recipeListCmd.Flags().BoolVarP(&recipeAll, "all", "a", false, "Fetch every page")

	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeCreateCmd)
	recipeCmd.AddCommand(recipeEditCmd)
}
