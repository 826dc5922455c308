package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/resep/pkg/client"
)

// newTestServer points the shared client at a fake API for one test
func newTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client.Configure(srv.URL, 2*time.Second)
}

func TestGetRecipes_EnvelopeWithPagination(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recipes", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "minuman", r.URL.Query().Get("category"))
		assert.Empty(t, r.URL.Query().Get("search"))
		io.WriteString(w, `{"success":true,"data":[{"id":"1","name":"Es Teler","category":"minuman"}],
			"pagination":{"page":2,"limit":50,"total":51,"total_pages":2}}`)
	})

	res, err := GetRecipes(context.Background(), RecipeListParams{Page: 2, Limit: 50, Category: CategoryMinuman})
	require.NoError(t, err)
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Es Teler", res.Recipes[0].Name)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasMore())
}

func TestGetRecipes_BareArray(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"1"},{"id":"2"}]`)
	})

	res, err := GetRecipes(context.Background(), RecipeListParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 2)
	assert.Nil(t, res.Pagination)
}

func TestGetRecipes_SuccessFalseIsError(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false,"message":"Gagal memuat resep"}`)
	})

	_, err := GetRecipes(context.Background(), RecipeListParams{Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gagal memuat resep")
}

func TestGetRecipe_NotFound(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"success":false,"message":"Recipe not found"}`)
	})

	_, err := GetRecipe(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsServerError(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Recipe not found", apiErr.Message)
}

func TestGetRecipe_ServerErrorWithoutBody(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := GetRecipe(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, IsServerError(err))
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestGetRecipe_DecodesStepShapes(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recipes/42", r.URL.Path)
		io.WriteString(w, `{"success":true,"data":{"id":"42","name":"Rendang","category":"makanan",
			"ingredients":[{"name":"daging","quantity":"1 kg"}],
			"steps":["potong daging",{"instruction":"tumis bumbu"},{"step":"masak 4 jam"},{"other":1},"  "]}}`)
	})

	recipe, err := GetRecipe(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Rendang", recipe.Name)
	assert.Equal(t, []Ingredient{{Name: "daging", Quantity: "1 kg"}}, recipe.Ingredients)
	assert.Equal(t, []string{"potong daging", "tumis bumbu", "masak 4 jam"}, recipe.NonEmptySteps())
}

func TestGetRecipe_MissingData(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":null}`)
	})

	_, err := GetRecipe(context.Background(), "1")
	assert.Error(t, err)
}

func TestGetReviews(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/recipes/7/reviews", r.URL.Path)
		io.WriteString(w, `{"success":true,"data":[
			{"id":"r1","user_identifier":"u1","rating":5,"comment":"enak","created_at":"2024-01-02T00:00:00Z"},
			{"id":"r2","user_identifier":"u2","rating":3,"created_at":"2024-01-03T00:00:00Z"}]}`)
	})

	reviews, err := Remote{}.Reviews(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "u1", reviews[0].UserIdentifier)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestGetReviews_EmptyData(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true}`)
	})

	reviews, err := GetReviews(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCreateRecipe(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var in RecipeInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Soto Ayam", in.Name)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{"id":"99","name":"Soto Ayam","category":"makanan"}}`)
	})

	recipe, err := CreateRecipe(context.Background(), RecipeInput{Name: "Soto Ayam", Category: CategoryMakanan})
	require.NoError(t, err)
	assert.Equal(t, "99", recipe.ID)
}

func TestUpdateRecipe(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/recipes/99", r.URL.Path)
		io.WriteString(w, `{"success":true,"data":{"id":"99","name":"Soto Betawi","category":"makanan"}}`)
	})

	recipe, err := UpdateRecipe(context.Background(), "99", RecipeInput{Name: "Soto Betawi"})
	require.NoError(t, err)
	assert.Equal(t, "Soto Betawi", recipe.Name)
}

func TestCreateReview_WithoutDataEchoesInput(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in ReviewInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "u1", in.UserIdentifier)
		io.WriteString(w, `{"success":true,"message":"Ulasan ditambahkan"}`)
	})

	review, err := CreateReview(context.Background(), "7", ReviewInput{UserIdentifier: "u1", Username: "alice", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "7", review.RecipeID)
	assert.Equal(t, 4, review.Rating)
}

func TestRequestHonoursContext(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetRecipe(ctx, "1")
	assert.Error(t, err)
}

func TestPaginationHasMore(t *testing.T) {
	var nilPage *Pagination
	assert.False(t, nilPage.HasMore())
	assert.True(t, (&Pagination{Page: 1, TotalPages: 3}).HasMore())
	assert.False(t, (&Pagination{Page: 3, TotalPages: 3}).HasMore())
	assert.False(t, (&Pagination{Page: 1}).HasMore())
}
