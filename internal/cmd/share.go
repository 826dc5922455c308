package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/service"
)

var shareNoCopy bool

var shareCmd = &cobra.Command{
	Use:   "share <recipe-id> [category]",
	Short: "Print a recipe link and copy it to the clipboard",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		return withApp(func(app *service.App) error {
			service.NewShareService(app).Share(args[0], category, !shareNoCopy)
			return nil
		})
	},
}

func init() {
	shareCmd.Flags().BoolVar(&shareNoCopy, "no-copy", false, "Only print the link")
}
