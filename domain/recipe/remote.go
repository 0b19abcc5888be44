package recipe

// Remote is the server-side recipe resource. A submitted draft becomes exactly
// one Remote on create, or updates exactly one existing Remote on the
// edit-existing path.
type Remote struct {
	ID          string       `json:"id"`
	Author      string       `json:"author"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Portions    string       `json:"portions"`
	Ingredients []Ingredient `json:"ingredients"`
	StepsList   []Step       `json:"stepsList"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	IsVerified  bool         `json:"isVerified"`
}

// DraftFromRemote populates a draft from an existing remote recipe so the
// user can edit it. The result is always well formed: when the source has no
// ingredients or steps, a single blank placeholder is added so the editing
// form has a row to start from. The remote's title and author are carried
// over; the remote's id is the caller's edit target and is not part of the
// draft itself.
func DraftFromRemote(r Remote) Draft {
	d := NewDraft(r.Author, r.Title)
	d.Description = r.Description
	d.Category = r.Category
	d.Portions = r.Portions
	d.FinalPhotoURI = r.ImageURL

	d.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	if len(d.Ingredients) == 0 {
		d.Ingredients = []Ingredient{{}}
	}
	d.Steps = append([]Step(nil), r.StepsList...)
	if len(d.Steps) == 0 {
		d.Steps = []Step{{}}
	}
	return d
}

// ToRemote builds the submission payload for a validated draft. Steps and the
// final photo must already carry resolved remote media URLs. Recipes created
// from this client are never verified.
func (d Draft) ToRemote(editTargetID string) Remote {
	return Remote{
		ID:          editTargetID,
		Author:      d.Author,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Portions:    d.Portions,
		Ingredients: d.NamedIngredients(),
		StepsList:   append([]Step(nil), d.Steps...),
		ImageURL:    d.FinalPhotoURI,
		IsVerified:  false,
	}
}
