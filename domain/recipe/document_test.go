package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestRemoteFromDocumentCanonicalKeys(t *testing.T) {
	doc := decodeDoc(t, `{
		"id": "r-1",
		"author": "chefpao",
		"title": "Pizza Carbonara",
		"description": "A heresy",
		"category": "Main course",
		"portions": "4",
		"imageUrl": "https://media.example.com/final.jpg",
		"isVerified": true,
		"ingredients": [{"name": "Eggs", "quantity": "3", "unit": "pcs"}],
		"stepsList": [{"description": "Whisk.", "imageUrl": "https://media.example.com/s1.jpg"}]
	}`)

	r := RemoteFromDocument(doc)
	assert.Equal(t, "r-1", r.ID)
	assert.Equal(t, "chefpao", r.Author)
	assert.Equal(t, "Pizza Carbonara", r.Title)
	assert.Equal(t, "Main course", r.Category)
	assert.Equal(t, "4", r.Portions)
	assert.True(t, r.IsVerified)
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, Ingredient{Name: "Eggs", Quantity: "3", Unit: "pcs"}, r.Ingredients[0])
	require.Len(t, r.StepsList, 1)
	assert.Equal(t, "https://media.example.com/s1.jpg", r.StepsList[0].MediaURI)
}

func TestRemoteFromDocumentAlternateKeys(t *testing.T) {
	// Older service versions use different names for the same concepts.
	doc := decodeDoc(t, `{
		"_id": "r-2",
		"user": "chefpao",
		"name": "Tortilla",
		"summary": "Classic",
		"categoryName": "Starter",
		"servings": 6,
		"photo": "https://media.example.com/t.jpg",
		"ingredients": [{"ingredient": "Potatoes", "amount": "1", "measure": "kg"}],
		"steps": [{"step": "Slice the potatoes.", "media": "https://media.example.com/t1.jpg"}]
	}`)

	r := RemoteFromDocument(doc)
	assert.Equal(t, "r-2", r.ID)
	assert.Equal(t, "chefpao", r.Author)
	assert.Equal(t, "Tortilla", r.Title)
	assert.Equal(t, "Classic", r.Description)
	assert.Equal(t, "Starter", r.Category)
	assert.Equal(t, "6", r.Portions)
	assert.Equal(t, "https://media.example.com/t.jpg", r.ImageURL)
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, Ingredient{Name: "Potatoes", Quantity: "1", Unit: "kg"}, r.Ingredients[0])
	require.Len(t, r.StepsList, 1)
	assert.Equal(t, "Slice the potatoes.", r.StepsList[0].Description)
}

func TestRemoteFromDocumentKeyPriority(t *testing.T) {
	// When both keys are present the canonical one wins.
	doc := decodeDoc(t, `{"title": "Canonical", "name": "Fallback"}`)
	assert.Equal(t, "Canonical", RemoteFromDocument(doc).Title)

	// An empty canonical value falls through to the alternate.
	doc = decodeDoc(t, `{"title": "", "name": "Fallback"}`)
	assert.Equal(t, "Fallback", RemoteFromDocument(doc).Title)
}

func TestRemoteFromDocumentBareStringLists(t *testing.T) {
	doc := decodeDoc(t, `{
		"title": "Toast",
		"ingredients": ["Bread"],
		"steps": ["Toast the bread."]
	}`)

	r := RemoteFromDocument(doc)
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "Bread", r.Ingredients[0].Name)
	require.Len(t, r.StepsList, 1)
	assert.Equal(t, "Toast the bread.", r.StepsList[0].Description)
}

func TestRemoteFromDocumentMissingFields(t *testing.T) {
	r := RemoteFromDocument(decodeDoc(t, `{"id": "r-3"}`))
	assert.Equal(t, "r-3", r.ID)
	assert.NotNil(t, r.Ingredients)
	assert.NotNil(t, r.StepsList)
	assert.Empty(t, r.Ingredients)
	assert.Empty(t, r.StepsList)
}

func TestDraftFromRemoteAddsPlaceholders(t *testing.T) {
	d := DraftFromRemote(Remote{ID: "r-4", Author: "chefpao", Title: "Empty"})
	require.Len(t, d.Ingredients, 1)
	assert.True(t, d.Ingredients[0].IsBlank())
	require.Len(t, d.Steps, 1)
	assert.Empty(t, d.Steps[0].Description)
}

func TestDraftFromRemoteCopiesFields(t *testing.T) {
	src := Remote{
		ID:          "r-5",
		Author:      "chefpao",
		Title:       "Pizza Carbonara",
		Description: "A heresy",
		Category:    "Main course",
		Portions:    "4",
		ImageURL:    "https://media.example.com/final.jpg",
		Ingredients: []Ingredient{{Name: "Eggs", Quantity: "3", Unit: "pcs"}},
		StepsList:   []Step{{Description: "Whisk.", MediaURI: "https://media.example.com/s1.jpg"}},
	}
	d := DraftFromRemote(src)
	assert.Equal(t, src.Title, d.Title)
	assert.Equal(t, src.Description, d.Description)
	assert.Equal(t, src.Category, d.Category)
	assert.Equal(t, src.Portions, d.Portions)
	assert.Equal(t, src.ImageURL, d.FinalPhotoURI)
	assert.Equal(t, src.Ingredients, d.Ingredients)
	assert.Equal(t, src.StepsList, d.Steps)
	assert.NotEmpty(t, d.ID)

	// The draft owns its slices; editing it must not touch the source.
	d.Ingredients[0].Name = "Cream"
	assert.Equal(t, "Eggs", src.Ingredients[0].Name)
}
