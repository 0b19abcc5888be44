package recipe

import (
	"fmt"
	"strconv"
)

// RemoteFromDocument translates a loosely-shaped recipe document, as decoded
// from the remote service's JSON, into a Remote. Deployed service versions
// disagree on some field names, so each concept is read from a fixed priority
// list of keys; the first present, non-empty key wins:
//
//	id:          id, _id, recipeId
//	author:      author, user, userAlias, owner
//	title:       title, name
//	description: description, summary
//	category:    category, categoryName
//	portions:    portions, servings, portion
//	image:       imageUrl, image, photo, finalPhoto
//	ingredients: ingredients, ingredientsList
//	  name:      name, ingredient, title
//	  quantity:  quantity, amount, qty
//	  unit:      unit, measure, units
//	steps:       stepsList, steps
//	  text:      description, step, text
//	  media:     imageUrl, mediaUrl, media, image
//
// Missing fields decode to their zero values; the result is always well
// formed and never nil-slices its lists.
func RemoteFromDocument(doc map[string]interface{}) Remote {
	r := Remote{
		ID:          docString(doc, "id", "_id", "recipeId"),
		Author:      docString(doc, "author", "user", "userAlias", "owner"),
		Title:       docString(doc, "title", "name"),
		Description: docString(doc, "description", "summary"),
		Category:    docString(doc, "category", "categoryName"),
		Portions:    docString(doc, "portions", "servings", "portion"),
		ImageURL:    docString(doc, "imageUrl", "image", "photo", "finalPhoto"),
		IsVerified:  docBool(doc, "isVerified", "verified"),
		Ingredients: []Ingredient{},
		StepsList:   []Step{},
	}

	for _, item := range docList(doc, "ingredients", "ingredientsList") {
		r.Ingredients = append(r.Ingredients, Ingredient{
			Name:     docString(item, "name", "ingredient", "title"),
			Quantity: docString(item, "quantity", "amount", "qty"),
			Unit:     docString(item, "unit", "measure", "units"),
		})
	}

	for _, item := range docList(doc, "stepsList", "steps") {
		r.StepsList = append(r.StepsList, Step{
			Description: docString(item, "description", "step", "text"),
			MediaURI:    docString(item, "imageUrl", "mediaUrl", "media", "image"),
		})
	}

	return r
}

// docString returns the first present, non-empty string among keys. Numeric
// values are stringified, which covers services that send portions as a
// number.
func docString(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			if t == float64(int64(t)) {
				return strconv.FormatInt(int64(t), 10)
			}
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			return strconv.Itoa(t)
		case fmt.Stringer:
			if s := t.String(); s != "" {
				return s
			}
		}
	}
	return ""
}

func docBool(doc map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		if v, ok := doc[key].(bool); ok {
			return v
		}
	}
	return false
}

// docList returns the first present list among keys, with each element that
// is an object kept and everything else dropped. Bare-string list elements
// are mapped to an object with the value under "name" for ingredients and
// "description" for steps to survive, so they are wrapped with both keys.
func docList(doc map[string]interface{}, keys ...string) []map[string]interface{} {
	for _, key := range keys {
		raw, ok := doc[key].([]interface{})
		if !ok {
			continue
		}
		items := make([]map[string]interface{}, 0, len(raw))
		for _, elem := range raw {
			switch t := elem.(type) {
			case map[string]interface{}:
				items = append(items, t)
			case string:
				items = append(items, map[string]interface{}{
					"name":        t,
					"description": t,
				})
			}
		}
		return items
	}
	return nil
}
