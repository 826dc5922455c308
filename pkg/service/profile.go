package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zfogg/resep/pkg/api"
	clierrors "github.com/zfogg/resep/pkg/errors"
	"github.com/zfogg/resep/pkg/events"
	"github.com/zfogg/resep/pkg/favorites"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/identity"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/output"
	"github.com/zfogg/resep/pkg/reviews"
)

// Tab is a section of the profile page
type Tab string

const (
	TabFavorites Tab = "favorites"
	TabReviews   Tab = "reviews"
)

// TabState is what the active profile tab shows
type TabState struct {
	Tab       Tab
	Loading   bool
	Favorites []api.Recipe
	Requested int
	Reviews   []reviews.Reconciled
	Stats     reviews.Stats
	Err       error
}

// ProfileService drives the profile page: the local profile plus the
// favorites and reviews tabs. Tab loads may overlap; a result is applied
// only if no newer load started and its tab is still the active one.
type ProfileService struct {
	app          *App
	materializer *favorites.Materializer
	reconciler   *reviews.Reconciler

	mu         sync.Mutex
	active     Tab
	generation uint64
	state      TabState
	closed     bool

	cacheMu     sync.Mutex
	cached      bool
	cachedList  []reviews.Reconciled
	cachedStats reviews.Stats

	bus     *events.Bus[TabState]
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	unwatch func()
}

// NewProfileService creates the profile controller with no tab active.
// While the favorites tab is active it reloads whenever the favorites
// change, in this process or another.
func NewProfileService(app *App) *ProfileService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &ProfileService{
		app:          app,
		materializer: app.Materializer(),
		reconciler:   app.Reconciler(),
		bus:          events.NewBus[TabState](),
		ctx:          ctx,
		cancel:       cancel,
	}
	s.unwatch = app.Favorites.OnChange(s.onFavoritesChanged)
	return s
}

// Close stops background reloads and waits for them to finish
func (s *ProfileService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.unwatch()
	s.cancel()
	s.wg.Wait()
}

// OnUpdate registers fn to run whenever the tab state changes
func (s *ProfileService) OnUpdate(fn func(TabState)) func() {
	return s.bus.Subscribe(fn)
}

// State returns the current tab state
func (s *ProfileService) State() TabState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Deactivate marks the profile page as hidden. Loads still in flight are
// discarded when they complete.
func (s *ProfileService) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.active = ""
}

// ActiveTab returns the selected tab, empty while the page is hidden
func (s *ProfileService) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetTab selects tab without loading it
func (s *ProfileService) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = tab
}

// onFavoritesChanged may still be delivered after Close unsubscribed it, so
// the reload is registered with wg under mu only while open
func (s *ProfileService) onFavoritesChanged(c favorites.Change) {
	s.mu.Lock()
	if s.closed || s.active != TabFavorites {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	logger.Debug("Favorites changed, reloading tab", "recipe_id", c.RecipeID, "external", c.External)
	go func() {
		defer s.wg.Done()
		_, _ = s.Load(s.ctx, TabFavorites)
	}()
}

// begin makes tab active and returns the generation of the new load
func (s *ProfileService) begin(tab Tab) uint64 {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.active = tab
	s.state = TabState{Tab: tab, Loading: true}
	next := s.state
	s.mu.Unlock()

	s.bus.Publish(next)
	return gen
}

// finish applies result if gen is still the latest load for an active tab
func (s *ProfileService) finish(gen uint64, result TabState) bool {
	s.mu.Lock()
	if gen != s.generation || result.Tab != s.active {
		s.mu.Unlock()
		logger.Debug("Discarding stale tab result", "tab", result.Tab, "generation", gen)
		return false
	}
	s.state = result
	s.mu.Unlock()

	s.bus.Publish(result)
	return true
}

// SelectTab makes tab active and loads it in the background
func (s *ProfileService) SelectTab(tab Tab) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_, _ = s.Load(s.ctx, tab)
	}()
}

// Load makes tab active, fetches its data and applies it. The returned
// state is the fetched result; applied is false when a newer load or a tab
// switch made it stale.
func (s *ProfileService) Load(ctx context.Context, tab Tab) (result TabState, applied bool) {
	gen := s.begin(tab)

	switch tab {
	case TabReviews:
		result = s.loadReviews(ctx, false)
	default:
		result = s.loadFavorites(ctx)
	}

	return result, s.finish(gen, result)
}

// Refresh reloads the active tab. The reviews tab bypasses its cache.
func (s *ProfileService) Refresh(ctx context.Context) (TabState, bool) {
	tab := s.ActiveTab()
	if tab != TabReviews {
		return s.Load(ctx, tab)
	}

	gen := s.begin(tab)
	result := s.loadReviews(ctx, true)
	return result, s.finish(gen, result)
}

func (s *ProfileService) loadFavorites(ctx context.Context) TabState {
	ids := s.app.Favorites.List()
	recipes := s.materializer.Materialize(ctx, ids)
	return TabState{Tab: TabFavorites, Favorites: recipes, Requested: len(ids)}
}

// loadReviews reconciles the user's reviews, newest first. Results are
// cached until force is set since every run scans the whole catalog.
func (s *ProfileService) loadReviews(ctx context.Context, force bool) TabState {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if s.cached && !force {
		return TabState{Tab: TabReviews, Reviews: s.cachedList, Stats: s.cachedStats}
	}

	profile := s.app.Identity.Profile()
	list, stats, err := s.reconciler.Reconcile(ctx, profile.Identifier, profile.Username)
	if err != nil {
		return TabState{Tab: TabReviews, Err: err}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})

	s.cached = true
	s.cachedList = list
	s.cachedStats = stats
	return TabState{Tab: TabReviews, Reviews: list, Stats: stats}
}

// InvalidateReviews drops cached reviews so the next load reconciles again
func (s *ProfileService) InvalidateReviews() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cached = false
	s.cachedList = nil
}

// ShowProfile prints the local profile
func (s *ProfileService) ShowProfile() error {
	p := s.app.Identity.Profile()

	avatar := "(none)"
	if p.Avatar != nil {
		avatar = formatter.Truncate(*p.Avatar, 40)
	}

	return output.PrintRecord("Profil", map[string]interface{}{
		"Username":   p.Username,
		"Bio":        p.Bio,
		"Avatar":     avatar,
		"Identifier": p.Identifier,
		"Favorites":  s.app.Favorites.Count(),
	})
}

// ShowIdentifier prints the local user identifier
func (s *ProfileService) ShowIdentifier() {
	output.Println(s.app.Identity.Identifier())
}

// EditProfile saves patch and prints the result
func (s *ProfileService) EditProfile(patch identity.Patch) error {
	p, err := s.app.Identity.SaveProfile(patch)
	if err != nil {
		return clierrors.StorageError(err)
	}
	formatter.PrintSuccess("Profil berhasil diperbarui (%s)", p.Username)
	return nil
}

// SetAvatar loads an image file as the avatar. An empty path clears it.
func (s *ProfileService) SetAvatar(path string) error {
	var uri string
	if path != "" {
		var err error
		uri, err = identity.AvatarFromFile(path)
		switch {
		case errors.Is(err, identity.ErrAvatarTooLarge):
			return clierrors.AvatarSizeError(float64(fileSize(path))/(1024*1024), identity.MaxAvatarBytes/(1024*1024))
		case errors.Is(err, identity.ErrAvatarNotImage):
			return clierrors.InvalidFormatError("avatar must be an image file")
		case err != nil:
			return clierrors.FileNotFoundError(path)
		}
	}

	if _, err := s.app.Identity.UpdateAvatar(uri); err != nil {
		return clierrors.StorageError(err)
	}
	if uri == "" {
		formatter.PrintSuccess("Avatar dihapus")
	} else {
		formatter.PrintSuccess("Avatar diperbarui")
	}
	return nil
}

// ShowFavorites loads and prints the favorites tab
func (s *ProfileService) ShowFavorites(ctx context.Context) error {
	result, _ := s.Load(ctx, TabFavorites)

	if result.Requested == 0 {
		formatter.PrintInfo("Belum ada resep favorit")
		return nil
	}

	if err := output.PrintTable(formatter.RecipeHeaders, formatter.RecipeRows(result.Favorites), result.Favorites); err != nil {
		return err
	}
	if output.GetOutputFormat() != output.FormatJSON {
		output.Printf("\n%d of %d favorite%s\n", len(result.Favorites), result.Requested, pluralize(result.Requested))
	}
	return nil
}

// ShowReviews loads and prints the reviews tab
func (s *ProfileService) ShowReviews(ctx context.Context, refresh bool) error {
	if refresh {
		s.InvalidateReviews()
	}
	result, _ := s.Load(ctx, TabReviews)
	if result.Err != nil {
		return fmt.Errorf("failed to load reviews: %w", result.Err)
	}

	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", result.Reviews)
	}

	if len(result.Reviews) == 0 {
		formatter.PrintInfo("Belum ada ulasan")
	} else {
		rows := make([][]string, 0, len(result.Reviews))
		for _, r := range result.Reviews {
			rows = append(rows, []string{
				formatter.Truncate(r.RecipeName, 30),
				r.RecipeCategory,
				formatter.Stars(r.Rating),
				formatter.Date(r.CreatedAt),
				formatter.Truncate(r.Comment, 40),
			})
		}
		if err := output.PrintTable(formatter.ReviewHeaders, rows, result.Reviews); err != nil {
			return err
		}
	}

	logger.Debug("Review scan", "recipes", result.Stats.RecipesChecked, "reviews", result.Stats.ReviewsChecked)
	if result.Stats.FailedRecipes > 0 {
		formatter.PrintWarning("%d recipe%s could not be checked", result.Stats.FailedRecipes, pluralize(result.Stats.FailedRecipes))
	}
	return nil
}
