package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/models"
	"github.com/atinyakov/hack-or-snooze/internal/storage"
)

var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = storage.ErrNotFound
	ErrConflict     = storage.ErrConflict
)

// maxPasswordLen is the longest password bcrypt accepts.
const maxPasswordLen = 72

// Error is a rule violation with a message meant for the client. Kind is one
// of the sentinels above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func fail(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

type StoryService struct {
	repository Storage
	auth       AuthIface
	logger     *zap.Logger
}

func NewStoryService(repo Storage, auth AuthIface, logger *zap.Logger) *StoryService {
	return &StoryService{
		repository: repo,
		auth:       auth,
		logger:     logger,
	}
}

func (s *StoryService) PingContext(ctx context.Context) error {
	return s.repository.PingContext(ctx)
}

func (s *StoryService) Signup(ctx context.Context, creds models.Credentials) (models.UserRecord, string, error) {
	username := strings.TrimSpace(creds.Username)
	name := strings.TrimSpace(creds.Name)
	if username == "" || name == "" || creds.Password == "" {
		return models.UserRecord{}, "", fail(ErrInvalid, "username, password and name are required")
	}
	if len(creds.Password) > maxPasswordLen {
		return models.UserRecord{}, "", fail(ErrInvalid, "password must be at most %d bytes", maxPasswordLen)
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		return models.UserRecord{}, "", err
	}

	now := time.Now().UTC()
	u := storage.UserRecord{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repository.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return models.UserRecord{}, "", fail(ErrConflict, "There already exists a user with username '%s'", username)
		}
		return models.UserRecord{}, "", err
	}

	token, err := s.auth.BuildJWTString(username)
	if err != nil {
		return models.UserRecord{}, "", err
	}

	s.logger.Info("user signed up", zap.String("username", username))

	profile, err := s.profile(ctx, u)
	if err != nil {
		return models.UserRecord{}, "", err
	}

	return profile, token, nil
}

func (s *StoryService) Login(ctx context.Context, creds models.Credentials) (models.UserRecord, string, error) {
	u, err := s.repository.FindUser(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserRecord{}, "", fail(ErrUnauthorized, "Invalid username or password")
		}
		return models.UserRecord{}, "", err
	}

	if !CheckPassword(u.PasswordHash, creds.Password) {
		return models.UserRecord{}, "", fail(ErrUnauthorized, "Invalid username or password")
	}

	token, err := s.auth.BuildJWTString(u.Username)
	if err != nil {
		return models.UserRecord{}, "", err
	}

	profile, err := s.profile(ctx, u)
	if err != nil {
		return models.UserRecord{}, "", err
	}

	return profile, token, nil
}

func (s *StoryService) GetUser(ctx context.Context, token, username string) (models.UserRecord, error) {
	u, err := s.authorize(ctx, token)
	if err != nil {
		return models.UserRecord{}, err
	}
	if u.Username != username {
		return models.UserRecord{}, fail(ErrForbidden, "Cannot view the profile of '%s'", username)
	}

	return s.profile(ctx, u)
}

func (s *StoryService) ListStories(ctx context.Context) ([]models.StoryRecord, error) {
	records, err := s.repository.ListStories(ctx)
	if err != nil {
		return nil, err
	}

	return toStories(records), nil
}

func (s *StoryService) CreateStory(ctx context.Context, token string, story models.NewStory) (models.StoryRecord, error) {
	u, err := s.authorize(ctx, token)
	if err != nil {
		return models.StoryRecord{}, err
	}

	title := strings.TrimSpace(story.Title)
	author := strings.TrimSpace(story.Author)
	link := strings.TrimSpace(story.URL)
	if title == "" || author == "" || link == "" {
		return models.StoryRecord{}, fail(ErrInvalid, "title, author and url are required")
	}
	if !isWebURL(link) {
		return models.StoryRecord{}, fail(ErrInvalid, "url must be an absolute http or https URL")
	}

	now := time.Now().UTC()
	rec := storage.StoryRecord{
		ID:        uuid.NewString(),
		Username:  u.Username,
		Title:     title,
		Author:    author,
		URL:       link,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateStory(ctx, rec); err != nil {
		return models.StoryRecord{}, err
	}

	s.logger.Info("story created", zap.String("storyID", rec.ID), zap.String("username", u.Username))

	return toStory(rec), nil
}

func (s *StoryService) DeleteStory(ctx context.Context, token, storyID string) (models.StoryRecord, error) {
	u, err := s.authorize(ctx, token)
	if err != nil {
		return models.StoryRecord{}, err
	}

	rec, err := s.findStory(ctx, storyID)
	if err != nil {
		return models.StoryRecord{}, err
	}
	if rec.Username != u.Username {
		return models.StoryRecord{}, fail(ErrForbidden, "Only '%s' can delete this story", rec.Username)
	}

	if err := s.repository.DeleteStory(ctx, storyID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.StoryRecord{}, fail(ErrNotFound, "No story with id '%s'", storyID)
		}
		return models.StoryRecord{}, err
	}

	s.logger.Info("story deleted", zap.String("storyID", storyID), zap.String("username", u.Username))

	return toStory(rec), nil
}

func (s *StoryService) AddFavorite(ctx context.Context, token, username, storyID string) (models.UserRecord, error) {
	return s.changeFavorite(ctx, token, username, storyID, s.repository.AddFavorite)
}

func (s *StoryService) RemoveFavorite(ctx context.Context, token, username, storyID string) (models.UserRecord, error) {
	return s.changeFavorite(ctx, token, username, storyID, s.repository.RemoveFavorite)
}

func (s *StoryService) changeFavorite(
	ctx context.Context,
	token, username, storyID string,
	apply func(ctx context.Context, username, storyID string) error,
) (models.UserRecord, error) {
	u, err := s.authorize(ctx, token)
	if err != nil {
		return models.UserRecord{}, err
	}
	if u.Username != username {
		return models.UserRecord{}, fail(ErrForbidden, "Cannot change the favorites of '%s'", username)
	}

	if _, err := s.findStory(ctx, storyID); err != nil {
		return models.UserRecord{}, err
	}

	if err := apply(ctx, username, storyID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserRecord{}, fail(ErrNotFound, "No story with id '%s'", storyID)
		}
		return models.UserRecord{}, err
	}

	return s.profile(ctx, u)
}

// authorize resolves a login token to an existing account.
func (s *StoryService) authorize(ctx context.Context, token string) (storage.UserRecord, error) {
	if token == "" {
		return storage.UserRecord{}, fail(ErrUnauthorized, "A token is required")
	}

	claims, err := s.auth.ParseRawJWT(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return storage.UserRecord{}, fail(ErrUnauthorized, "Invalid token")
	}

	u, err := s.repository.FindUser(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.UserRecord{}, fail(ErrUnauthorized, "Invalid token")
		}
		return storage.UserRecord{}, err
	}

	return u, nil
}

func (s *StoryService) findStory(ctx context.Context, storyID string) (storage.StoryRecord, error) {
	rec, err := s.repository.FindStory(ctx, storyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.StoryRecord{}, fail(ErrNotFound, "No story with id '%s'", storyID)
		}
		return storage.StoryRecord{}, err
	}

	return rec, nil
}

func (s *StoryService) profile(ctx context.Context, u storage.UserRecord) (models.UserRecord, error) {
	own, err := s.repository.StoriesByUser(ctx, u.Username)
	if err != nil {
		return models.UserRecord{}, err
	}

	favorites, err := s.repository.Favorites(ctx, u.Username)
	if err != nil {
		return models.UserRecord{}, err
	}

	return models.UserRecord{
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		Stories:   toStories(own),
		Favorites: toStories(favorites),
	}, nil
}

func toStory(r storage.StoryRecord) models.StoryRecord {
	return models.StoryRecord{
		StoryID:   r.ID,
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
	}
}

func toStories(rs []storage.StoryRecord) []models.StoryRecord {
	out := make([]models.StoryRecord, 0, len(rs))
	for _, r := range rs {
		out = append(out, toStory(r))
	}
	return out
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}
