package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/service"
)

var reviewRating int

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review commands",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <recipe-id> [comment...]",
	Short: "Review a recipe as the local user",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			_, err := service.NewRecipeService(app).AddReview(cmd.Context(), args[0], reviewRating, strings.Join(args[1:], " "))
			return err
		})
	},
}

func init() {
	reviewAddCmd.Flags().IntVarP(&reviewRating, "rating", "r", 5, "Rating from 1 to 5")

	reviewCmd.AddCommand(reviewAddCmd)
}
