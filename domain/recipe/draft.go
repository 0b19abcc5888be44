package recipe

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cookbook/pkg/utils"
)

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// IsBlank reports whether the entry has no name yet. Blank entries are editing
// transience and are skipped by validation and submission.
func (i Ingredient) IsBlank() bool {
	return strings.TrimSpace(i.Name) == ""
}

// Step is one preparation step. MediaURI may be a device-local reference or an
// already-resolved remote URL.
type Step struct {
	Description string `json:"description"`
	MediaURI    string `json:"mediaUri,omitempty"`
}

// Draft is a recipe not yet accepted by the server. It is created client-side,
// persisted per author in the draft store when submission is deferred, and
// removed from the store after a successful remote submission.
type Draft struct {
	ID            string       `json:"id"`
	Author        string       `json:"author" validate:"required"`
	Title         string       `json:"title" validate:"required"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category" validate:"required"`
	Portions      string       `json:"portions" validate:"required"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	FinalPhotoURI string       `json:"finalPhotoUri,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// NewDraft creates an empty draft for an author with identity and timestamps
// assigned. Callers fill the remaining fields before validation.
func NewDraft(author, title string) Draft {
	return Draft{
		ID:        uuid.New().String(),
		Author:    author,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

// FieldError is a single field-level validation failure, addressed to the
// form field the user must correct.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NamedIngredients returns the ingredient entries that carry a name,
// preserving order. Blank entries are dropped.
func (d Draft) NamedIngredients() []Ingredient {
	named := make([]Ingredient, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		if !ing.IsBlank() {
			named = append(named, ing)
		}
	}
	return named
}

// Validate checks the required-field, per-ingredient, and per-step invariants.
// It returns nil when the draft is submittable.
func (d Draft) Validate() []FieldError {
	var errs []FieldError

	for _, v := range utils.StructViolations(d) {
		errs = append(errs, FieldError{Field: v.Field, Message: v.Message})
	}

	named := d.NamedIngredients()
	if len(named) == 0 {
		errs = append(errs, FieldError{
			Field:   "ingredients",
			Message: "at least one named ingredient is required",
		})
	}
	idx := 0
	for _, ing := range d.Ingredients {
		if ing.IsBlank() {
			continue
		}
		if strings.TrimSpace(ing.Quantity) == "" {
			errs = append(errs, FieldError{
				Field:   ingredientField(idx, "quantity"),
				Message: "quantity is required for ingredient " + strings.TrimSpace(ing.Name),
			})
		}
		if strings.TrimSpace(ing.Unit) == "" {
			errs = append(errs, FieldError{
				Field:   ingredientField(idx, "unit"),
				Message: "unit is required for ingredient " + strings.TrimSpace(ing.Name),
			})
		}
		idx++
	}

	if len(d.Steps) == 0 {
		errs = append(errs, FieldError{
			Field:   "steps",
			Message: "at least one step is required",
		})
	}
	for i, step := range d.Steps {
		if strings.TrimSpace(step.Description) == "" {
			errs = append(errs, FieldError{
				Field:   stepField(i, "description"),
				Message: "step description cannot be empty",
			})
		}
	}

	return errs
}

func ingredientField(index int, part string) string {
	return "ingredients[" + strconv.Itoa(index) + "]." + part
}

func stepField(index int, part string) string {
	return "steps[" + strconv.Itoa(index) + "]." + part
}

// IsLocalMedia reports whether a media reference points at device-local
// storage and therefore must be uploaded before submission. Remote http(s)
// URLs pass through untouched, which keeps prior media intact on the
// edit-existing path.
func IsLocalMedia(uri string) bool {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return false
	}
	lower := strings.ToLower(uri)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return false
	}
	return true
}
