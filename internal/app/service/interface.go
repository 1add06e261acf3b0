package service

import (
	"context"

	"github.com/atinyakov/hack-or-snooze/internal/models"
	"github.com/atinyakov/hack-or-snooze/internal/storage"
)

//go:generate mockgen -destination=../../mocks/mock_service.go -package=mocks github.com/atinyakov/hack-or-snooze/internal/app/service StoryServiceIface

// Storage is implemented by storage.MemoryStorage and
// repository.StoryRepository.
type Storage interface {
	CreateUser(context.Context, storage.UserRecord) error
	FindUser(context.Context, string) (storage.UserRecord, error)
	CreateStory(context.Context, storage.StoryRecord) error
	FindStory(context.Context, string) (storage.StoryRecord, error)
	ListStories(context.Context) ([]storage.StoryRecord, error)
	StoriesByUser(context.Context, string) ([]storage.StoryRecord, error)
	DeleteStory(context.Context, string) error
	AddFavorite(ctx context.Context, username, storyID string) error
	RemoveFavorite(ctx context.Context, username, storyID string) error
	Favorites(context.Context, string) ([]storage.StoryRecord, error)
	PingContext(context.Context) error
}

// StoryServiceIface is what the HTTP handlers need from the service.
type StoryServiceIface interface {
	Signup(ctx context.Context, creds models.Credentials) (models.UserRecord, string, error)
	Login(ctx context.Context, creds models.Credentials) (models.UserRecord, string, error)
	GetUser(ctx context.Context, token, username string) (models.UserRecord, error)
	ListStories(ctx context.Context) ([]models.StoryRecord, error)
	CreateStory(ctx context.Context, token string, story models.NewStory) (models.StoryRecord, error)
	DeleteStory(ctx context.Context, token, storyID string) (models.StoryRecord, error)
	AddFavorite(ctx context.Context, token, username, storyID string) (models.UserRecord, error)
	RemoveFavorite(ctx context.Context, token, username, storyID string) (models.UserRecord, error)
	PingContext(ctx context.Context) error
}
