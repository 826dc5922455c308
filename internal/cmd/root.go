package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/config"
	clierrors "github.com/zfogg/resep/pkg/errors"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/output"
	"github.com/zfogg/resep/pkg/service"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "resep-cli",
	Short: "Resep CLI - Indonesian recipe catalog in the terminal",
	Long: `Resep CLI is a command-line client for the Resep Nusantara recipe
catalog. Browse makanan and minuman recipes, keep favorites, review
recipes and share links, all from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config and logger
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		logger.Init(verbose)

		if outputFmt != "" {
			if !output.ValidateOutputFormat(outputFmt) {
				return clierrors.ValidationError("output", "must be text, json or table")
			}
			output.SetFormat(output.OutputFormat(outputFmt))
		}
		return nil
	},
}

// Execute runs the command tree until it finishes or the process is
// interrupted
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		stop()
		os.Exit(1)
	}
}

// withApp wires the stores and remote for one command and releases them
// afterwards
func withApp(fn func(app *service.App) error) error {
	app := service.NewApp()
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()
	return fn(app)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/resep/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "Output format: text, json, table (default from output.format)")

	// Add subcommands
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)

	registerCompletions()
}
