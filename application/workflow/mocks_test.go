package workflow

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"cookbook/domain/connectivity"
	"cookbook/domain/recipe"
)

// MockRecipeService mocks the remote recipe service.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) FindByTitleAndAuthor(ctx context.Context, title, author string) ([]recipe.Remote, error) {
	args := m.Called(ctx, title, author)
	if v := args.Get(0); v != nil {
		return v.([]recipe.Remote), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecipeService) GetByID(ctx context.Context, id string) (recipe.Remote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(recipe.Remote), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, r recipe.Remote) (recipe.Remote, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(recipe.Remote), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, r recipe.Remote) (recipe.Remote, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(recipe.Remote), args.Error(1)
}

// MockMediaUploader mocks the media host.
type MockMediaUploader struct {
	mock.Mock
}

func (m *MockMediaUploader) Upload(ctx context.Context, localURI string) (string, error) {
	args := m.Called(ctx, localURI)
	return args.String(0), args.Error(1)
}

// memDraftStore is an in-memory draft store with injectable failures.
type memDraftStore struct {
	mu      sync.Mutex
	byUser  map[string][]recipe.Draft
	getErr  error
	setErr  error
	setLog  int
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{byUser: make(map[string][]recipe.Draft)}
}

func (s *memDraftStore) Get(ctx context.Context, author string) ([]recipe.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return append([]recipe.Draft(nil), s.byUser[author]...), nil
}

func (s *memDraftStore) Set(ctx context.Context, author string, drafts []recipe.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.setLog++
	s.byUser[author] = append([]recipe.Draft(nil), drafts...)
	return nil
}

// staticMonitor is a fixed connectivity state.
type staticMonitor struct {
	state connectivity.State
}

func (s staticMonitor) Current() connectivity.State             { return s.state }
func (s staticMonitor) Subscribe(func(connectivity.State)) func() { return func() {} }
