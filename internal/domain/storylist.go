package domain

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/models"
)

// ErrForeignUser is returned when a list is changed by a user built by a
// different Service. Their lists live in different catalogs.
var ErrForeignUser = errors.New("user belongs to another service")

// StoryList is the ordered list of all known stories, newest first.
type StoryList struct {
	api     API
	catalog *Catalog
	logger  *zap.Logger
	ids     idList
}

// NewStoryInput is what a user fills in to post a story.
type NewStoryInput struct {
	Title  string
	Author string
	URL    string
}

// Stories returns a copy of the list.
func (l *StoryList) Stories() []Story {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	return l.catalog.storiesLocked(l.ids.ids)
}

// IDs returns the story ids in list order.
func (l *StoryList) IDs() []string {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	return l.ids.snapshot()
}

func (l *StoryList) Len() int {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	return len(l.ids.ids)
}

// Find returns the story with the given id if it is in the list.
func (l *StoryList) Find(id string) (Story, bool) {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	if !l.ids.contains(id) {
		return Story{}, false
	}
	s, ok := l.catalog.records[id]
	return s, ok
}

// AddStory posts a story as u and puts it at the front of both the global
// list and u's own stories.
func (l *StoryList) AddStory(ctx context.Context, u *User, in NewStoryInput) (Story, error) {
	if u == nil || u.Token() == "" {
		return Story{}, models.ErrNotAuthenticated
	}
	if u.catalog != l.catalog {
		return Story{}, ErrForeignUser
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.URL = strings.TrimSpace(in.URL)
	if in.Title == "" || in.Author == "" || in.URL == "" {
		return Story{}, models.ErrInvalidData
	}

	rec, err := l.api.CreateStory(ctx, u.Token(), models.NewStory{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
	})
	if err != nil {
		return Story{}, err
	}

	story := NewStory(rec)

	l.catalog.mu.Lock()
	l.ids.prepend(l.catalog, story)
	u.ownStories.prepend(l.catalog, story)
	l.catalog.mu.Unlock()

	l.logger.Debug("story added",
		zap.String("storyID", story.ID),
		zap.String("username", u.Username))

	return story, nil
}

// RemoveStory deletes a story as u and drops it from the global list and
// from u's own and favorite stories.
func (l *StoryList) RemoveStory(ctx context.Context, u *User, storyID string) error {
	if u == nil || u.Token() == "" {
		return models.ErrNotAuthenticated
	}
	if u.catalog != l.catalog {
		return ErrForeignUser
	}

	if err := l.api.DeleteStory(ctx, u.Token(), storyID); err != nil {
		return err
	}

	l.catalog.mu.Lock()
	l.ids.remove(l.catalog, storyID)
	u.ownStories.remove(l.catalog, storyID)
	u.favorites.remove(l.catalog, storyID)
	l.catalog.mu.Unlock()

	l.logger.Debug("story removed",
		zap.String("storyID", storyID),
		zap.String("username", u.Username))

	return nil
}
