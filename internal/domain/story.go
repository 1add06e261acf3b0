package domain

import (
	"fmt"
	"net/url"
	"time"

	"github.com/atinyakov/hack-or-snooze/internal/models"
)

// Story is a single submitted link. It is a value: collections hand out
// copies and a story is never edited in place.
type Story struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// NewStory maps an API record onto a Story.
func NewStory(rec models.StoryRecord) Story {
	return Story{
		ID:        rec.StoryID,
		Title:     rec.Title,
		Author:    rec.Author,
		URL:       rec.URL,
		Username:  rec.Username,
		CreatedAt: rec.CreatedAt,
	}
}

// HostName returns the host part of the story URL, without port.
func (s Story) HostName() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", models.ErrMalformedURL, s.URL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", models.ErrMalformedURL, s.URL)
	}

	return u.Hostname(), nil
}
