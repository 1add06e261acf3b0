// Package session ties the story list and the current user of one client
// run together and keeps the login token in a credential store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atinyakov/hack-or-snooze/internal/credentials"
	"github.com/atinyakov/hack-or-snooze/internal/domain"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

var (
	// ErrNotStarted is returned by story operations before Start succeeded.
	ErrNotStarted = errors.New("session not started")
	// ErrUnknownStory is returned for an id that is not in any loaded list.
	ErrUnknownStory = errors.New("unknown story")
)

type Session struct {
	service *domain.Service
	store   credentials.Store
	logger  *zap.Logger

	mu      sync.RWMutex
	stories *domain.StoryList
	user    *domain.User
}

func New(service *domain.Service, store credentials.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// Start loads the story list and, at the same time, restores the user saved
// by an earlier run. Only a failure to load the stories is returned.
// Credentials the API rejects are removed from the store.
func (s *Session) Start(ctx context.Context) error {
	var (
		list *domain.StoryList
		user *domain.User
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l, err := s.service.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("load stories: %w", err)
		}
		list = l
		return nil
	})

	g.Go(func() error {
		user = s.restore(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.user
	s.stories = list
	s.user = user
	s.mu.Unlock()

	if prev != nil && prev != user {
		prev.Release()
	}

	return nil
}

func (s *Session) restore(ctx context.Context) *domain.User {
	creds, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn("cannot read stored credentials", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	u, err := s.service.RestoreUser(ctx, creds.Token, creds.Username)
	if err == nil {
		s.logger.Debug("user restored", zap.String("username", u.Username))
		return u
	}

	if !rejected(err) {
		s.logger.Warn("cannot restore user", zap.String("username", creds.Username), zap.Error(err))
		return nil
	}

	s.logger.Info("stored credentials rejected, clearing",
		zap.String("username", creds.Username),
		zap.Error(err))
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("cannot clear credentials", zap.Error(err))
	}

	return nil
}

// rejected reports whether the API refused the stored token or user, as
// opposed to failing for a reason that may go away on its own.
func rejected(err error) bool {
	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		return true
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusNotFound
	}

	return false
}

// Signup creates an account and makes it the current user.
func (s *Session) Signup(ctx context.Context, username, password, name string) (*domain.User, error) {
	u, err := s.service.Signup(ctx, username, password, name)
	if err != nil {
		return nil, err
	}

	s.setUser(u)
	return u, nil
}

// Login makes an existing account the current user.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.service.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.setUser(u)
	return u, nil
}

func (s *Session) setUser(u *domain.User) {
	s.mu.Lock()
	prev := s.user
	s.user = u
	s.mu.Unlock()

	if prev != nil && prev != u {
		prev.Release()
	}

	err := s.store.Save(credentials.Credentials{Token: u.Token(), Username: u.Username})
	if err != nil {
		s.logger.Warn("cannot save credentials", zap.String("username", u.Username), zap.Error(err))
	}
}

// Logout forgets the current user here and in the store. Stories reachable
// only through that user are dropped from the catalog.
func (s *Session) Logout() error {
	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}

	return s.store.Clear()
}

// Stories is nil until Start succeeds.
func (s *Session) Stories() *domain.StoryList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stories
}

func (s *Session) CurrentUser() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user, s.user != nil
}

func (s *Session) state() (*domain.StoryList, *domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, nil, models.ErrNotAuthenticated
	}
	if s.stories == nil {
		return nil, nil, ErrNotStarted
	}

	return s.stories, s.user, nil
}

func (s *Session) AddStory(ctx context.Context, in domain.NewStoryInput) (domain.Story, error) {
	list, u, err := s.state()
	if err != nil {
		return domain.Story{}, err
	}

	return list.AddStory(ctx, u, in)
}

func (s *Session) RemoveStory(ctx context.Context, storyID string) error {
	list, u, err := s.state()
	if err != nil {
		return err
	}

	return list.RemoveStory(ctx, u, storyID)
}

// ToggleFavorite flips the favorite state of a story and returns the new
// state.
func (s *Session) ToggleFavorite(ctx context.Context, storyID string) (bool, error) {
	_, u, err := s.state()
	if err != nil {
		return false, err
	}

	story, err := s.lookup(storyID)
	if err != nil {
		return false, err
	}

	return u.ToggleFavorite(ctx, story)
}

func (s *Session) AddFavorite(ctx context.Context, storyID string) error {
	_, u, err := s.state()
	if err != nil {
		return err
	}

	story, err := s.lookup(storyID)
	if err != nil {
		return err
	}

	return u.AddFavorite(ctx, story)
}

func (s *Session) RemoveFavorite(ctx context.Context, storyID string) error {
	_, u, err := s.state()
	if err != nil {
		return err
	}

	story, err := s.lookup(storyID)
	if err != nil {
		return err
	}

	return u.RemoveFavorite(ctx, story)
}

// lookup finds a story in any list loaded by this session, including
// favorites that have dropped off the global list.
func (s *Session) lookup(storyID string) (domain.Story, error) {
	story, ok := s.service.Catalog().Lookup(storyID)
	if !ok {
		return domain.Story{}, fmt.Errorf("%w: %q", ErrUnknownStory, storyID)
	}

	return story, nil
}
