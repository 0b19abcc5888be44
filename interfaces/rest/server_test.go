package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/domain/recipe"
	"cookbook/infrastructure/recipeapi"
	pkgerrors "cookbook/pkg/errors"
)

func newStub(t *testing.T, seed ...recipe.Remote) (*httptest.Server, *recipeapi.Client) {
	t.Helper()
	stub := NewServer(nil)
	stub.Seed(seed...)
	srv := httptest.NewServer(stub.Setup())
	t.Cleanup(srv.Close)
	return srv, recipeapi.NewClient(srv.URL, "test-token", nil)
}

func TestHealthNeedsNoAuth(t *testing.T) {
	srv, _ := newStub(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecipesRequireBearerToken(t *testing.T) {
	srv, _ := newStub(t)

	resp, err := http.Get(srv.URL + "/recipes")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListFiltersByTitleSubstringAndAuthor(t *testing.T) {
	_, client := newStub(t,
		recipe.Remote{ID: "r-1", Author: "chefpao", Title: "Pizza Carbonara", Category: "Main course", Portions: "4"},
		recipe.Remote{ID: "r-2", Author: "chefpao", Title: "Gazpacho", Category: "Soup", Portions: "2"},
		recipe.Remote{ID: "r-3", Author: "sousmaria", Title: "Pizza Margherita", Category: "Main course", Portions: "4"},
	)

	results, err := client.FindByTitleAndAuthor(context.Background(), "pizza", "chefpao")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "r-1", results[0].ID)
	assert.Equal(t, "Pizza Carbonara", results[0].Title)
}

func TestCreateThenGetRoundtrip(t *testing.T) {
	_, client := newStub(t)
	ctx := context.Background()

	created, err := client.Create(ctx, recipe.Remote{
		Author:      "chefpao",
		Title:       "Pizza Carbonara",
		Category:    "Main course",
		Portions:    "4",
		Ingredients: []recipe.Ingredient{{Name: "Eggs", Quantity: "3", Unit: "pcs"}},
		StepsList:   []recipe.Step{{Description: "Whisk.", MediaURI: "https://media.test/s1"}},
		ImageURL:    "https://media.test/final",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.IsVerified)

	got, err := client.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pizza Carbonara", got.Title)
	assert.Equal(t, "chefpao", got.Author)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Eggs", got.Ingredients[0].Name)
	require.Len(t, got.StepsList, 1)
	assert.Equal(t, "https://media.test/s1", got.StepsList[0].MediaURI)
	assert.Equal(t, "https://media.test/final", got.ImageURL)
}

func TestUpdateOverwritesExistingRecipe(t *testing.T) {
	_, client := newStub(t,
		recipe.Remote{ID: "r-1", Author: "chefpao", Title: "Pizza Carbonara", Category: "Main course", Portions: "4"},
	)
	ctx := context.Background()

	updated, err := client.Update(ctx, recipe.Remote{
		ID:       "r-1",
		Author:   "chefpao",
		Title:    "Pizza Carbonara Deluxe",
		Category: "Main course",
		Portions: "6",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", updated.ID)

	got, err := client.GetByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "Pizza Carbonara Deluxe", got.Title)
	assert.Equal(t, "6", got.Portions)
}

func TestUpdateUnknownRecipeIsNotFound(t *testing.T) {
	_, client := newStub(t)

	_, err := client.Update(context.Background(), recipe.Remote{
		ID: "r-404", Title: "Ghost", Category: "Main course", Portions: "1",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetUnknownRecipeIsNotFound(t *testing.T) {
	_, client := newStub(t)

	_, err := client.GetByID(context.Background(), "r-404")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestUploadReturnsResolvableURL(t *testing.T) {
	_, client := newStub(t)

	local := filepath.Join(t.TempDir(), "final.jpg")
	require.NoError(t, os.WriteFile(local, []byte("jpeg-bytes"), 0o644))

	url, err := client.Upload(context.Background(), local)
	require.NoError(t, err)
	assert.Contains(t, url, "https://media.cookbook.test/m-")

	again, err := client.Upload(context.Background(), local)
	require.NoError(t, err)
	assert.NotEqual(t, url, again)
}
