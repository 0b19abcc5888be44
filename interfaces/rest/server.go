// Package rest is a stub of the remote recipe service for local development
// and integration tests: an in-memory recipe table behind the same REST
// surface the real service exposes.
package rest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"cookbook/domain/recipe"
)

// Server is the stub recipe service.
type Server struct {
	logger *zap.Logger

	mu      sync.RWMutex
	recipes map[string]recipe.Remote
	nextID  int
	mediaN  int
}

// NewServer creates an empty stub service.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger:  logger,
		recipes: make(map[string]recipe.Remote),
	}
}

// Seed inserts recipes directly, for tests and demo data. Records without an
// id are assigned one.
func (s *Server) Seed(records ...recipe.Remote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			r.ID = s.newIDLocked()
		}
		s.recipes[r.ID] = r
	}
}

// Setup configures all routes and middleware
func (s *Server) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(s.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(RequireBearer())

		r.Get("/recipes", s.listRecipes)
		r.Post("/recipes", s.createRecipe)
		r.Get("/recipes/{recipeID}", s.getRecipe)
		r.Put("/recipes/{recipeID}", s.updateRecipe)
		r.Post("/upload", s.uploadMedia)
	})

	return router
}

// listRecipes filters by title substring and author, the way the real
// service's partial filter behaves. Exact matching stays client-side.
func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	title := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("title")))
	author := r.URL.Query().Get("user")

	s.mu.RLock()
	matches := make([]recipe.Remote, 0)
	for _, rec := range s.recipes {
		if author != "" && rec.Author != author {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(rec.Title), title) {
			continue
		}
		matches = append(matches, rec)
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recipeID")

	s.mu.RLock()
	rec, ok := s.recipes[id]
	s.mu.RUnlock()

	if !ok {
		respondError(w, http.StatusNotFound, "recipe not found")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) newIDLocked() string {
	s.nextID++
	return "r-" + strconv.Itoa(s.nextID)
}
