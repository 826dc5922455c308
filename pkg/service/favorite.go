package service

import (
	"context"
	"fmt"

	"github.com/zfogg/resep/pkg/favorites"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/output"
)

// FavoriteService manages the local favorites
type FavoriteService struct {
	app *App
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(app *App) *FavoriteService {
	return &FavoriteService{app: app}
}

// List prints the favorites resolved into recipes. Recipes that fail to
// load are left out; the footer shows how many resolved.
func (s *FavoriteService) List(ctx context.Context) error {
	ids := s.app.Favorites.List()
	if len(ids) == 0 {
		formatter.PrintInfo("Belum ada resep favorit")
		return nil
	}

	recipes := s.app.Materializer().Materialize(ctx, ids)
	if err := output.PrintTable(formatter.RecipeHeaders, formatter.RecipeRows(recipes), recipes); err != nil {
		return err
	}
	if output.GetOutputFormat() != output.FormatJSON {
		output.Printf("\n%d of %d favorite%s\n", len(recipes), len(ids), pluralize(len(ids)))
	}
	return nil
}

// IDs prints the raw favorite ids
func (s *FavoriteService) IDs() error {
	ids := s.app.Favorites.List()
	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", ids)
	}
	for _, id := range ids {
		output.Println(id)
	}
	return nil
}

// Toggle flips recipeID and reports the new membership
func (s *FavoriteService) Toggle(recipeID string) bool {
	on := s.app.Favorites.Toggle(recipeID)
	s.report(recipeID, on)
	return on
}

// Add marks recipeID as a favorite
func (s *FavoriteService) Add(recipeID string) {
	s.app.Favorites.Add(recipeID)
	s.report(recipeID, true)
}

// Remove unmarks recipeID
func (s *FavoriteService) Remove(recipeID string) {
	s.app.Favorites.Remove(recipeID)
	s.report(recipeID, false)
}

// Count prints the number of favorites
func (s *FavoriteService) Count() int {
	n := s.app.Favorites.Count()
	output.Println(n)
	return n
}

func (s *FavoriteService) report(recipeID string, on bool) {
	if on {
		formatter.PrintSuccess("♥ %s ditambahkan ke favorit", recipeID)
	} else {
		formatter.PrintSuccess("%s dihapus dari favorit", recipeID)
	}
}

// Watch prints favorites changes, including those made by other resep-cli
// processes, until ctx is done
func (s *FavoriteService) Watch(ctx context.Context) error {
	watching, err := s.app.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch favorites: %w", err)
	}
	if !watching {
		formatter.PrintWarning("Storage does not support watching; only changes from this process are shown")
	}

	unsubscribe := s.app.Favorites.OnChange(func(c favorites.Change) {
		logger.Debug("Favorites change", "recipe_id", c.RecipeID, "external", c.External)
		if c.External {
			output.Printf("favorites changed elsewhere: %d total\n", s.app.Favorites.Count())
			return
		}
		state := "removed"
		if c.IsFavorited {
			state = "added"
		}
		output.Printf("%s %s: %d total\n", c.RecipeID, state, s.app.Favorites.Count())
	})
	defer unsubscribe()

	formatter.PrintInfo("👀 Watching favorites (%d). Press Ctrl+C to stop", s.app.Favorites.Count())

	<-ctx.Done()
	return nil
}
