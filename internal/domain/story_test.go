package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/hack-or-snooze/internal/domain"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

func TestNewStory(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := domain.NewStory(models.StoryRecord{
		StoryID:   "s-1",
		Title:     "Go 1.24 is released",
		Author:    "The Go Team",
		URL:       "https://go.dev/blog/go1.24",
		Username:  "gopher",
		CreatedAt: created,
	})

	assert.Equal(t, domain.Story{
		ID:        "s-1",
		Title:     "Go 1.24 is released",
		Author:    "The Go Team",
		URL:       "https://go.dev/blog/go1.24",
		Username:  "gopher",
		CreatedAt: created,
	}, s)
}

func TestStory_HostName(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "path", url: "https://example.com/a/b", want: "example.com"},
		{name: "port is dropped", url: "http://localhost:8080/x?y=1", want: "localhost"},
		{name: "subdomain", url: "https://news.ycombinator.com/item?id=1", want: "news.ycombinator.com"},
		{name: "not a url", url: "not a url", wantErr: true},
		{name: "empty", url: "", wantErr: true},
		{name: "no scheme", url: "example.com/path", wantErr: true},
		{name: "no host", url: "mailto:someone@example.com", wantErr: true},
		{name: "unparsable", url: "://missing-scheme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.Story{ID: "s", URL: tt.url}

			got, err := s.HostName()
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrMalformedURL)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := s.HostName()
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
