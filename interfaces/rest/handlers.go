package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cookbook/domain/recipe"
)

// createRequest mirrors the recipe create/update body shape.
type createRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Portions    string              `json:"portions"`
	Author      string              `json:"author"`
	Ingredients []recipe.Ingredient `json:"ingredients"`
	StepsList   []struct {
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	} `json:"stepsList"`
	ImageURL   string `json:"imageUrl"`
	IsVerified bool   `json:"isVerified"`
}

func (req createRequest) toRemote(id string) recipe.Remote {
	steps := make([]recipe.Step, 0, len(req.StepsList))
	for _, s := range req.StepsList {
		steps = append(steps, recipe.Step{Description: s.Description, MediaURI: s.ImageURL})
	}
	return recipe.Remote{
		ID:          id,
		Author:      req.Author,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Portions:    req.Portions,
		Ingredients: req.Ingredients,
		StepsList:   steps,
		ImageURL:    req.ImageURL,
		IsVerified:  false,
	}
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	s.mu.Lock()
	id := s.newIDLocked()
	rec := req.toRemote(id)
	s.recipes[id] = rec
	s.mu.Unlock()

	s.logger.Info("recipe created",
		zap.String("recipeId", id),
		zap.String("title", rec.Title),
		zap.String("author", rec.Author),
	)
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipeID")

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	_, ok := s.recipes[id]
	if !ok {
		s.mu.Unlock()
		respondError(w, http.StatusNotFound, "recipe not found")
		return
	}
	rec := req.toRemote(id)
	s.recipes[id] = rec
	s.mu.Unlock()

	s.logger.Info("recipe updated",
		zap.String("recipeId", id),
		zap.String("title", rec.Title),
	)
	respondJSON(w, http.StatusOK, rec)
}

// uploadMedia accepts a multipart file and returns a fake secure URL. The
// stub does not retain the bytes; it only needs to hand back a resolvable
// remote reference.
func (s *Server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()
	size, _ := io.Copy(io.Discard, file)

	s.mu.Lock()
	s.mediaN++
	n := s.mediaN
	s.mu.Unlock()

	s.logger.Info("media uploaded",
		zap.String("filename", header.Filename),
		zap.Int64("bytes", size),
	)
	respondJSON(w, http.StatusOK, map[string]string{
		"url": "https://media.cookbook.test/m-" + strconv.Itoa(n),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
