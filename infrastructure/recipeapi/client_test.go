package recipeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

func TestFindByTitleAndAuthorQueryAndAuth(t *testing.T) {
	var gotAuth, gotTitle, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/recipes", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotTitle = r.URL.Query().Get("title")
		gotUser = r.URL.Query().Get("user")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "r-1", "title": "Pizza Carbonara", "author": "chefpao"},
			{"_id": "r-2", "name": "Pizza Margherita", "user": "chefpao"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123", nil)
	results, err := c.FindByTitleAndAuthor(context.Background(), "Pizza", "chefpao")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "Pizza", gotTitle)
	assert.Equal(t, "chefpao", gotUser)

	require.Len(t, results, 2)
	assert.Equal(t, "r-1", results[0].ID)
	// Alternate document keys decode the same way as canonical ones.
	assert.Equal(t, "r-2", results[1].ID)
	assert.Equal(t, "Pizza Margherita", results[1].Title)
	assert.Equal(t, "chefpao", results[1].Author)
}

func TestGetByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	_, err := c.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateSendsWirePayload(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recipes", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body["id"] = "r-7"
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	created, err := c.Create(context.Background(), recipe.Remote{
		Author:      "chefpao",
		Title:       "Pizza Carbonara",
		Category:    "Main course",
		Portions:    "4",
		Ingredients: []recipe.Ingredient{{Name: "Eggs", Quantity: "3", Unit: "pcs"}},
		StepsList:   []recipe.Step{{Description: "Whisk.", MediaURI: "https://media.test/s1"}},
		ImageURL:    "https://media.test/final",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-7", created.ID)
	assert.Equal(t, "Pizza Carbonara", created.Title)

	// Step media travels under the service's imageUrl key.
	steps, ok := body["stepsList"].([]interface{})
	require.True(t, ok)
	require.Len(t, steps, 1)
	step := steps[0].(map[string]interface{})
	assert.Equal(t, "https://media.test/s1", step["imageUrl"])
	assert.Equal(t, false, body["isVerified"])
}

func TestUpdateTargetsRecipePath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "r-9", "title": "Pizza Carbonara"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	updated, err := c.Update(context.Background(), recipe.Remote{
		ID:       "r-9",
		Title:    "Pizza Carbonara",
		Category: "Main course",
		Portions: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/recipes/r-9", gotPath)
	assert.Equal(t, "r-9", updated.ID)
}

func TestUpdateRequiresID(t *testing.T) {
	c := NewClient("http://unused.invalid", "tok", nil)
	_, err := c.Update(context.Background(), recipe.Remote{Title: "No ID"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestServerErrorBecomesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	_, err := c.GetByID(context.Background(), "r-1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))
}

func TestUploadMultipartRoundtrip(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "step1.jpg")
	require.NoError(t, os.WriteFile(local, []byte("jpeg-bytes"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "step1.jpg", header.Filename)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://media.test/m-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)

	url, err := c.Upload(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/m-1", url)

	// The file:// form resolves to the same path.
	url, err = c.Upload(context.Background(), "file://"+local)
	require.NoError(t, err)
	assert.Equal(t, "https://media.test/m-1", url)
}

func TestUploadRejectsRemoteSchemes(t *testing.T) {
	c := NewClient("http://unused.invalid", "tok", nil)
	_, err := c.Upload(context.Background(), "content://media/external/images/42")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestUploadMissingFile(t *testing.T) {
	c := NewClient("http://unused.invalid", "tok", nil)
	_, err := c.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))
}
