package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/service"
)

var favoriteIDsOnly bool

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Favorite recipe commands",
	Long:    "Manage the favorite recipes stored on this device",
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewFavoriteService(app)
			if favoriteIDsOnly {
				return svc.IDs()
			}
			return svc.List(cmd.Context())
		})
	},
}

var favoriteToggleCmd = &cobra.Command{
	Use:   "toggle <recipe-id>",
	Short: "Add or remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			service.NewFavoriteService(app).Toggle(args[0])
			return nil
		})
	},
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <recipe-id>",
	Short: "Add a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			service.NewFavoriteService(app).Add(args[0])
			return nil
		})
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <recipe-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a favorite",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			service.NewFavoriteService(app).Remove(args[0])
			return nil
		})
	},
}

var favoriteCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			service.NewFavoriteService(app).Count()
			return nil
		})
	},
}

var favoriteWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch favorites change, including from other terminals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			return service.NewFavoriteService(app).Watch(cmd.Context())
		})
	},
}

func init() {
	favoriteListCmd.Flags().BoolVar(&favoriteIDsOnly, "ids", false, "Print ids without fetching recipes")

	favoriteCmd.AddCommand(favoriteListCmd)
	favoriteCmd.AddCommand(favoriteToggleCmd)
	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	favoriteCmd.AddCommand(favoriteCountCmd)
	favoriteCmd.AddCommand(favoriteWatchCmd)
}
