package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/identity"
	"github.com/zfogg/resep/pkg/prompter"
	"github.com/zfogg/resep/pkg/service"
)

var (
	profileUsername    string
	profileBio         string
	profileClearAvatar bool
	profileRefresh     bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Local profile commands",
	Long:  "View and edit the profile stored on this device",
}

var profileViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()
			return svc.ShowProfile()
		})
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile",
	Long:  "Edit your profile. Without flags, prompts for each field.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()

			var patch identity.Patch
			if cmd.Flags().Changed("username") {
				patch.Username = &profileUsername
			}
			if cmd.Flags().Changed("bio") {
				patch.Bio = &profileBio
			}

			if patch.Username == nil && patch.Bio == nil {
				current := app.Identity.Profile()
				p := prompter.Default()
				username, err := p.StringDefault("Username: ", current.Username)
				if err != nil {
					return err
				}
				bio, err := p.StringDefault("Bio: ", current.Bio)
				if err != nil {
					return err
				}
				patch = identity.Patch{Username: &username, Bio: &bio}
			}

			return svc.EditProfile(patch)
		})
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar [image-file]",
	Short: "Set or clear your avatar (max 2 MB)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else if !profileClearAvatar {
			return cmd.Usage()
		}

		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()
			return svc.SetAvatar(path)
		})
	},
}

var profileFavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Show the favorites tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()
			return svc.ShowFavorites(cmd.Context())
		})
	},
}

var profileReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Show the reviews you have written",
	Long: `Show the reviews written with this device's identifier. The API has
no lookup by author, so every recipe in the catalog is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()
			return svc.ShowReviews(cmd.Context(), profileRefresh)
		})
	},
}

var profileIDCmd = &cobra.Command{
	Use:   "id",
	Short: "Print this device's user identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *service.App) error {
			svc := service.NewProfileService(app)
			defer svc.Close()
			svc.ShowIdentifier()
			return nil
		})
	},
}

func init() {
	profileEditCmd.Flags().StringVar(&profileUsername, "username", "", "Display name")
	profileEditCmd.Flags().StringVar(&profileBio, "bio", "", "Short bio")
	profileAvatarCmd.Flags().BoolVar(&profileClearAvatar, "clear", false, "Remove the avatar")
	profileReviewsCmd.Flags().BoolVar(&profileRefresh, "refresh", false, "Ignore cached results")

	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileAvatarCmd)
	profileCmd.AddCommand(profileFavoritesCmd)
	profileCmd.AddCommand(profileReviewsCmd)
	profileCmd.AddCommand(profileIDCmd)
}
