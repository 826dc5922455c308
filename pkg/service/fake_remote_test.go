package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/zfogg/resep/pkg/api"
	"github.com/zfogg/resep/pkg/output"
	"github.com/zfogg/resep/pkg/storage"
)

// fakeRemote serves a fixed catalog from memory
type fakeRemote struct {
	mu       sync.Mutex
	recipes  []api.Recipe
	reviews  map[string][]api.Review
	failIDs  map[string]bool
	created  []api.RecipeInput
	updated  map[string]api.RecipeInput
	posted   []api.ReviewInput
	listErr  error
	gate     chan struct{} // when set, Reviews waits for it
	listHits atomic.Int32
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		recipes: []api.Recipe{
			{ID: "1", Name: "Rendang", Category: api.CategoryMakanan},
			{ID: "2", Name: "Es Teler", Category: api.CategoryMinuman},
			{ID: "3", Name: "Soto Ayam", Category: api.CategoryMakanan},
		},
		reviews: map[string][]api.Review{},
		failIDs: map[string]bool{},
		updated: map[string]api.RecipeInput{},
	}
}

func (f *fakeRemote) ListRecipes(ctx context.Context, params api.RecipeListParams) (*api.RecipeListResponse, error) {
	f.listHits.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matching []api.Recipe
	for _, r := range f.recipes {
		if params.Category == "" || r.Category == params.Category {
			matching = append(matching, r)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = len(matching) + 1
	}
	page := max(params.Page, 1)
	start := min((page-1)*limit, len(matching))
	end := min(start+limit, len(matching))
	totalPages := (len(matching) + limit - 1) / limit

	return &api.RecipeListResponse{
		Recipes:    append([]api.Recipe(nil), matching[start:end]...),
		Pagination: &api.Pagination{Page: page, Limit: limit, Total: len(matching), TotalPages: totalPages},
	}, nil
}

func (f *fakeRemote) Recipe(ctx context.Context, id string) (*api.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failIDs[id] {
		return nil, fmt.Errorf("recipe %s unavailable", id)
	}
	for _, r := range f.recipes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, &api.APIError{Message: "Resep tidak ditemukan", StatusCode: 404}
}

func (f *fakeRemote) Reviews(ctx context.Context, recipeID string) ([]api.Review, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reviews[recipeID], nil
}

func (f *fakeRemote) CreateRecipe(ctx context.Context, input api.RecipeInput) (*api.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, input)
	r := api.Recipe{ID: fmt.Sprintf("new-%d", len(f.created)), Name: input.Name, Category: input.Category}
	f.recipes = append(f.recipes, r)
	return &r, nil
}

func (f *fakeRemote) UpdateRecipe(ctx context.Context, id string, input api.RecipeInput) (*api.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updated[id] = input
	return &api.Recipe{ID: id, Name: input.Name, Category: input.Category}, nil
}

func (f *fakeRemote) CreateReview(ctx context.Context, recipeID string, input api.ReviewInput) (*api.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.posted = append(f.posted, input)
	review := api.Review{
		ID:             fmt.Sprintf("rv-%d", len(f.posted)),
		RecipeID:       recipeID,
		UserIdentifier: input.UserIdentifier,
		Username:       input.Username,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}
	f.reviews[recipeID] = append(f.reviews[recipeID], review)
	return &review, nil
}

// syncBuffer is an output sink safe to read while services write to it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// newTestApp returns an app over memory storage and a fake remote, with
// output captured
func newTestApp(t *testing.T) (*App, *fakeRemote, *storage.MemoryStore, *syncBuffer) {
	t.Helper()

	color.NoColor = true
	buf := &syncBuffer{}
	output.SetWriter(buf)
	t.Cleanup(func() { output.SetWriter(nil) })

	remote := newFakeRemote()
	backend := storage.NewMemoryStore()
	app := NewAppWith(backend, remote)
	t.Cleanup(func() { _ = app.Close() })

	return app, remote, backend, buf
}
