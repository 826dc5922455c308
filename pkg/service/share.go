package service

import (
	"github.com/atotto/clipboard"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/navigation"
	"github.com/zfogg/resep/pkg/output"
)

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// ShareService builds shareable recipe links
type ShareService struct {
	app *App
}

// NewShareService creates a new share service
func NewShareService(app *App) *ShareService {
	return &ShareService{app: app}
}

// Link returns the deep link for a recipe
func (s *ShareService) Link(recipeID, category string) string {
	return navigation.ShareURL(s.app.ShareBase, recipeID, category)
}

// Share prints the link and, when toClipboard is set, puts it on the clipboard.
// A clipboard failure is reported but does not fail the command.
func (s *ShareService) Share(recipeID, category string, toClipboard bool) string {
	link := s.Link(recipeID, category)
	output.Println(link)

	if !toClipboard {
		return link
	}
	if clipboard.Unsupported {
		formatter.PrintWarning("Clipboard not available on this system")
		return link
	}
	if err := writeClipboard(link); err != nil {
		logger.Warn("Failed to copy link", "error", err)
		formatter.PrintWarning("Could not copy link: %v", err)
		return link
	}
	formatter.PrintSuccess("Link resep berhasil disalin!")
	return link
}
