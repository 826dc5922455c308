package reviews

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/resep/pkg/api"
	"go.uber.org/goleak"
)

type fakeSource struct {
	recipes  []api.Recipe
	pageSize int
	reviews  map[string][]api.Review
	failFor  map[string]bool
	listErr  error
}

func (f *fakeSource) ListRecipes(ctx context.Context, params api.RecipeListParams) (*api.RecipeListResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	size := params.Limit
	if f.pageSize > 0 {
		size = f.pageSize
	}
	totalPages := (len(f.recipes) + size - 1) / size
	start := (params.Page - 1) * size
	end := min(start+size, len(f.recipes))
	if start > end {
		start = end
	}
	return &api.RecipeListResponse{
		Recipes:    f.recipes[start:end],
		Pagination: &api.Pagination{Page: params.Page, Limit: size, Total: len(f.recipes), TotalPages: totalPages},
	}, nil
}

func (f *fakeSource) Reviews(ctx context.Context, recipeID string) ([]api.Review, error) {
	if f.failFor[recipeID] {
		return nil, fmt.Errorf("reviews for %s unavailable", recipeID)
	}
	return f.reviews[recipeID], nil
}

func twoRecipeSource() *fakeSource {
	return &fakeSource{
		recipes: []api.Recipe{
			{ID: "A", Name: "Rendang", Category: api.CategoryMakanan, ImageURL: "https://img/a.jpg"},
			{ID: "B", Name: "Es Cendol", Category: api.CategoryMinuman},
		},
		reviews: map[string][]api.Review{
			"A": {
				{ID: "ra1", UserIdentifier: "u1", Username: "alice", Rating: 5},
				{ID: "ra2", UserIdentifier: "u2", Username: "alice", Rating: 2},
			},
			"B": {
				{ID: "rb1", UserIdentifier: "u1", Username: "someone else", Rating: 4},
			},
		},
	}
}

func TestReconcile_FiltersByIdentifier(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReconciler(twoRecipeSource())

	got, stats, err := r.Reconcile(context.Background(), "u1", "alice")
	require.NoError(t, err)

	want := []Reconciled{
		{
			Review:         api.Review{ID: "ra1", UserIdentifier: "u1", Username: "alice", Rating: 5},
			RecipeName:     "Rendang",
			RecipeID:       "A",
			RecipeImage:    "https://img/a.jpg",
			RecipeCategory: api.CategoryMakanan,
		},
		{
			Review:         api.Review{ID: "rb1", UserIdentifier: "u1", Username: "someone else", Rating: 4},
			RecipeName:     "Es Cendol",
			RecipeID:       "B",
			RecipeCategory: api.CategoryMinuman,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Stats{RecipesChecked: 2, ReviewsChecked: 3, Matches: 2}, stats)
}

func TestReconcile_UnknownIdentifier(t *testing.T) {
	r := NewReconciler(twoRecipeSource())

	got, stats, err := r.Reconcile(context.Background(), "u3", "bob")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, stats.Matches)
}

func TestReconcile_IgnoresUsername(t *testing.T) {
	r := NewReconciler(twoRecipeSource())

	// u2 wrote a review under the name "alice"; only identifiers count
	got, _, err := r.Reconcile(context.Background(), "u2", "bob")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ra2", got[0].ID)
}

func TestReconcile_PartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := twoRecipeSource()
	src.failFor = map[string]bool{"B": true}

	got, stats, err := NewReconciler(src).Reconcile(context.Background(), "u1", "alice")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].RecipeID)
	assert.Equal(t, 1, stats.FailedRecipes)
	assert.Equal(t, 2, stats.RecipesChecked)
}

func TestReconcile_DrainFailure(t *testing.T) {
	src := twoRecipeSource()
	src.listErr = errors.New("connection refused")

	got, _, err := NewReconciler(src).Reconcile(context.Background(), "u1", "alice")

	assert.Error(t, err)
	assert.ErrorIs(t, err, src.listErr)
	assert.Nil(t, got)
}

func TestReconcile_PreservesCatalogOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	faker := gofakeit.New(7)
	src := &fakeSource{pageSize: 3, reviews: map[string][]api.Review{}}

	var wantIDs []string
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("r%02d", i)
		src.recipes = append(src.recipes, api.Recipe{ID: id, Name: faker.Dinner(), Category: api.CategoryMakanan})
		src.reviews[id] = []api.Review{
			{ID: id + "-x", UserIdentifier: faker.UUID()},
			{ID: id + "-me-1", UserIdentifier: "me"},
			{ID: id + "-me-2", UserIdentifier: "me"},
		}
		wantIDs = append(wantIDs, id+"-me-1", id+"-me-2")
	}

	got, stats, err := NewReconciler(src, WithConcurrency(4), WithPageSize(3)).
		Reconcile(context.Background(), "me", "")
	require.NoError(t, err)

	gotIDs := make([]string, len(got))
	for i, r := range got {
		gotIDs[i] = r.ID
	}
	assert.Equal(t, wantIDs, gotIDs)
	assert.Equal(t, Stats{RecipesChecked: 20, ReviewsChecked: 60, Matches: 40}, stats)
}

func TestReconcile_EmptyCatalog(t *testing.T) {
	got, stats, err := NewReconciler(&fakeSource{}).Reconcile(context.Background(), "u1", "alice")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, Stats{}, stats)
}
