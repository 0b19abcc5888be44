// Package recipeapi implements the remote recipe service client: recipe
// lookup, create/update, and media upload over plain REST+JSON.
package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// Client talks to the remote recipe service. All calls go through a circuit
// breaker so a flapping backend fails fast instead of piling up timeouts;
// callers still see every failure, the workflow never retries on its own.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a recipe service client. token is sent as a bearer
// credential on every request.
func NewClient(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "recipe-api",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByTitleAndAuthor queries recipes filtered by title and author. The
// server-side filter may be a partial match; callers do the exact-match scan.
func (c *Client) FindByTitleAndAuthor(ctx context.Context, title, author string) ([]recipe.Remote, error) {
	query := url.Values{}
	query.Set("title", title)
	query.Set("user", author)

	var docs []map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/recipes?"+query.Encode(), nil, &docs); err != nil {
		return nil, err
	}

	results := make([]recipe.Remote, 0, len(docs))
	for _, doc := range docs {
		results = append(results, recipe.RemoteFromDocument(doc))
	}
	return results, nil
}

// GetByID retrieves a single recipe record.
func (c *Client) GetByID(ctx context.Context, id string) (recipe.Remote, error) {
	var doc map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, &doc); err != nil {
		return recipe.Remote{}, err
	}
	return recipe.RemoteFromDocument(doc), nil
}

// Create publishes a new recipe.
func (c *Client) Create(ctx context.Context, r recipe.Remote) (recipe.Remote, error) {
	var doc map[string]interface{}
	if err := c.doJSON(ctx, http.MethodPost, "/recipes", payloadFromRemote(r), &doc); err != nil {
		return recipe.Remote{}, err
	}
	return recipe.RemoteFromDocument(doc), nil
}

// Update overwrites the existing recipe identified by r.ID.
func (c *Client) Update(ctx context.Context, r recipe.Remote) (recipe.Remote, error) {
	if r.ID == "" {
		return recipe.Remote{}, pkgerrors.NewValidationError("recipe id is required for update")
	}
	var doc map[string]interface{}
	if err := c.doJSON(ctx, http.MethodPut, "/recipes/"+url.PathEscape(r.ID), payloadFromRemote(r), &doc); err != nil {
		return recipe.Remote{}, err
	}
	return recipe.RemoteFromDocument(doc), nil
}

// stepPayload is the wire shape of a preparation step: media is always a
// resolved remote URL by the time it reaches the service.
type stepPayload struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type recipePayload struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Category    string              `json:"category"`
	Portions    string              `json:"portions"`
	Author      string              `json:"author,omitempty"`
	Ingredients []recipe.Ingredient `json:"ingredients"`
	StepsList   []stepPayload       `json:"stepsList"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	IsVerified  bool                `json:"isVerified"`
}

func payloadFromRemote(r recipe.Remote) recipePayload {
	steps := make([]stepPayload, 0, len(r.StepsList))
	for _, s := range r.StepsList {
		steps = append(steps, stepPayload{Description: s.Description, ImageURL: s.MediaURI})
	}
	return recipePayload{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Portions:    r.Portions,
		Author:      r.Author,
		Ingredients: r.Ingredients,
		StepsList:   steps,
		ImageURL:    r.ImageURL,
		IsVerified:  false,
	}
}

// doJSON performs one request through the circuit breaker and decodes the
// JSON response into out (which may be nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.NewInternalError("failed to encode request body").WithCause(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return pkgerrors.NewInternalError("failed to build request").WithCause(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, pkgerrors.NewNotFoundError("recipe")
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		if pkgerrors.IsAppError(err) {
			return err
		}
		return pkgerrors.NewNetworkError(fmt.Sprintf("recipe service request %s %s failed", method, path), err)
	}

	if out == nil {
		return nil
	}
	data := raw.([]byte)
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.NewNetworkError("failed to decode recipe service response", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
