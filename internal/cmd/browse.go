package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/prompter"
	"github.com/zfogg/resep/pkg/service"
)

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Browse recipes interactively",
	Long: `Start an interactive session. Pass a shared recipe link to open it
directly. Type "help" inside the session for commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fragment := ""
		if len(args) > 0 {
			fragment = args[0]
		}
		if !prompter.IsInteractive() {
			logger.Debug("Browsing with non-terminal input")
		}

		return withApp(func(app *service.App) error {
			if _, err := app.Watch(cmd.Context()); err != nil {
				formatter.PrintWarning("Not watching other sessions: %v", err)
			}

			b := service.NewBrowseService(app, prompter.Default(), fragment)
			defer b.Close()
			return b.Run(cmd.Context())
		})
	},
}
