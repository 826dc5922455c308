package service

import (
	"context"

	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/catalog"
	"github.com/zfogg/resep/pkg/client"
	"github.com/zfogg/resep/pkg/config"
	"github.com/zfogg/resep/pkg/favorites"
	"github.com/zfogg/resep/pkg/identity"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/reviews"
	"github.com/zfogg/resep/pkg/storage"
)

// Remote is the slice of the recipe API the services use
type Remote interface {
	catalog.RecipeLister
	favorites.RecipeFetcher
	reviews.ReviewFetcher
	CreateRecipe(ctx context.Context, input api.RecipeInput) (*api.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, input api.RecipeInput) (*api.Recipe, error)
	CreateReview(ctx context.Context, recipeID string, input api.ReviewInput) (*api.Review, error)
}

// Watcher is implemented by storage backends that can observe other
// processes writing to them
type Watcher interface {
	Watch(ctx context.Context) error
}

// App holds the local stores and the remote shared by every service
type App struct {
	Storage   storage.Store
	Favorites *favorites.Store
	Identity  *identity.Store
	Remote    Remote

	PageSize    int
	Concurrency int
	ShareBase   string
}

// NewApp wires an App from configuration. The HTTP client must be able to
// initialise; a storage directory that cannot be created falls back to
// memory so read-only commands still work.
func NewApp() *App {
	client.Init()

	var backend storage.Store
	fs, err := storage.NewFileStore(config.GetStorageDir())
	if err != nil {
		logger.Warn("Using in-memory storage", "error", err)
		backend = storage.NewMemoryStore()
	} else {
		backend = fs
	}

	app := NewAppWith(backend, api.Remote{})
	app.PageSize = config.GetInt("catalog.page_size")
	app.Concurrency = config.GetInt("fetch.concurrency")
	app.ShareBase = config.GetString("share.base_url")
	return app
}

// NewAppWith wires an App over the given storage and remote
func NewAppWith(backend storage.Store, remote Remote) *App {
	return &App{
		Storage:     backend,
		Favorites:   favorites.NewStore(backend),
		Identity:    identity.NewStore(backend),
		Remote:      remote,
		PageSize:    catalog.DefaultPageSize,
		Concurrency: favorites.DefaultConcurrency,
	}
}

// Materializer returns a favorites materializer using the app's remote
func (a *App) Materializer() *favorites.Materializer {
	return favorites.NewMaterializer(a.Remote, a.Concurrency)
}

// Reconciler returns a review reconciler using the app's remote
func (a *App) Reconciler() *reviews.Reconciler {
	return reviews.NewReconciler(a.Remote,
		reviews.WithPageSize(a.PageSize),
		reviews.WithConcurrency(a.Concurrency))
}

// Watch starts observing other processes' writes when the storage supports
// it. It reports whether watching started.
func (a *App) Watch(ctx context.Context) (bool, error) {
	w, ok := a.Storage.(Watcher)
	if !ok {
		return false, nil
	}
	if err := w.Watch(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the stores
func (a *App) Close() error {
	a.Favorites.Close()
	if c, ok := a.Storage.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
