// Package domain mirrors the state of the remote story service in memory:
// the global story list and the logged-in user with their own and favorite
// stories. Every mutating operation calls the API once and then applies the
// same change to each local list that refers to the affected story.
package domain

import (
	"context"

	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/models"
)

//go:generate mockgen -destination=../mocks/mock_api.go -package=mocks github.com/atinyakov/hack-or-snooze/internal/domain API

// API is the remote story service.
type API interface {
	ListStories(ctx context.Context) ([]models.StoryRecord, error)
	CreateStory(ctx context.Context, token string, story models.NewStory) (models.StoryRecord, error)
	DeleteStory(ctx context.Context, token string, storyID string) error
	Signup(ctx context.Context, username, password, name string) (models.UserRecord, string, error)
	Login(ctx context.Context, username, password string) (models.UserRecord, string, error)
	GetUser(ctx context.Context, token string, username string) (models.UserRecord, error)
	AddFavorite(ctx context.Context, token string, username string, storyID string) error
	RemoveFavorite(ctx context.Context, token string, username string, storyID string) error
}

// Service builds the entities of one session. All of them share its
// catalog.
type Service struct {
	api     API
	catalog *Catalog
	logger  *zap.Logger
}

func NewService(api API, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		api:     api,
		catalog: NewCatalog(),
		logger:  logger,
	}
}

// Catalog exposes the shared story records.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// FetchAll loads every story, in the order the API returns them.
func (s *Service) FetchAll(ctx context.Context) (*StoryList, error) {
	records, err := s.api.ListStories(ctx)
	if err != nil {
		return nil, err
	}

	stories := make([]Story, 0, len(records))
	for _, rec := range records {
		stories = append(stories, NewStory(rec))
	}

	l := &StoryList{api: s.api, catalog: s.catalog, logger: s.logger}

	s.catalog.mu.Lock()
	l.ids.fill(s.catalog, stories)
	s.catalog.mu.Unlock()

	s.logger.Debug("stories fetched", zap.Int("count", len(stories)))

	return l, nil
}

// Signup registers a new account and returns it logged in.
func (s *Service) Signup(ctx context.Context, username, password, name string) (*User, error) {
	rec, token, err := s.api.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}

	return s.newUser(rec, token)
}

// Login authenticates an existing account.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	rec, token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return s.newUser(rec, token)
}

// LoginViaStoredCredentials restores a session from a token saved earlier.
// It never fails: any problem is logged and reported as no session.
func (s *Service) LoginViaStoredCredentials(ctx context.Context, token, username string) (*User, bool) {
	u, err := s.RestoreUser(ctx, token, username)
	if err != nil {
		s.logger.Warn("stored credentials rejected",
			zap.String("username", username),
			zap.Error(err))
		return nil, false
	}

	return u, true
}

// RestoreUser is LoginViaStoredCredentials with the error kept, so callers
// can tell a rejected token from an unreachable API.
func (s *Service) RestoreUser(ctx context.Context, token, username string) (*User, error) {
	if token == "" || username == "" {
		return nil, models.ErrNotAuthenticated
	}

	rec, err := s.api.GetUser(ctx, token, username)
	if err != nil {
		return nil, err
	}

	return s.newUser(rec, token)
}

func (s *Service) newUser(rec models.UserRecord, token string) (*User, error) {
	if token == "" {
		return nil, models.ErrNotAuthenticated
	}

	u := &User{
		Username:  rec.Username,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		token:     token,
		api:       s.api,
		catalog:   s.catalog,
		logger:    s.logger,
	}

	s.catalog.mu.Lock()
	defer s.catalog.mu.Unlock()

	for _, r := range rec.Favorites {
		u.favorites.append(s.catalog, NewStory(r))
	}
	for _, r := range rec.Stories {
		u.ownStories.append(s.catalog, NewStory(r))
	}

	return u, nil
}
