package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/navigation"
	"github.com/zfogg/resep/pkg/service"
)

var openCmd = &cobra.Command{
	Use:   "open <url|#/recipe/id[/category]>",
	Short: "Open a shared recipe link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, ok := navigation.ParseFragment(args[0])
		if !ok {
			return fmt.Errorf("not a recipe link: %s", args[0])
		}
		return withApp(func(app *service.App) error {
			return service.NewRecipeService(app).Show(cmd.Context(), *state.SelectedRecipeID)
		})
	},
}
