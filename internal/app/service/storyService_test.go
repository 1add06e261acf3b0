package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/models"
	"github.com/atinyakov/hack-or-snooze/internal/storage"
)

func newStoryService(t *testing.T) *service.StoryService {
	t.Helper()

	mem, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	return service.NewStoryService(mem, service.NewAuth(secret, time.Hour), zap.NewNop())
}

func signup(t *testing.T, s *service.StoryService, username string) string {
	t.Helper()

	_, token, err := s.Signup(context.Background(), models.Credentials{Username: username, Password: "pw-" + username, Name: strings.ToUpper(username)})
	require.NoError(t, err)

	return token
}

func post(t *testing.T, s *service.StoryService, token, title string) models.StoryRecord {
	t.Helper()

	st, err := s.CreateStory(context.Background(), token, models.NewStory{Title: title, Author: "A", URL: "https://example.com/" + title})
	require.NoError(t, err)

	return st
}

func TestSignup(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()

	u, token, err := s.Signup(ctx, models.Credentials{Username: " alice ", Password: "pw", Name: "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", u.Username)
	assert.NotNil(t, u.Stories)
	assert.NotNil(t, u.Favorites)
	assert.False(t, u.CreatedAt.IsZero())

	_, _, err = s.Signup(ctx, models.Credentials{Username: "alice", Password: "x", Name: "Other"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestSignup_Invalid(t *testing.T) {
	s := newStoryService(t)

	tests := []struct {
		name  string
		creds models.Credentials
	}{
		{name: "no username", creds: models.Credentials{Password: "pw", Name: "N"}},
		{name: "no password", creds: models.Credentials{Username: "u", Name: "N"}},
		{name: "no name", creds: models.Credentials{Username: "u", Password: "pw"}},
		{name: "password too long", creds: models.Credentials{Username: "u", Password: strings.Repeat("x", 73), Name: "N"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Signup(context.Background(), tt.creds)
			assert.ErrorIs(t, err, service.ErrInvalid)
		})
	}
}

func TestLogin(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	signup(t, s, "alice")

	u, token, err := s.Login(ctx, models.Credentials{Username: "alice", Password: "pw-alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ALICE", u.Name)

	_, _, err = s.Login(ctx, models.Credentials{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, _, err = s.Login(ctx, models.Credentials{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	u, err := s.GetUser(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = s.GetUser(ctx, bob, "alice")
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = s.GetUser(ctx, "", "alice")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = s.GetUser(ctx, "nonsense", "alice")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestCreateStory(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")

	first := post(t, s, alice, "one")
	second := post(t, s, alice, "two")
	assert.Equal(t, "alice", first.Username)
	assert.NotEqual(t, first.StoryID, second.StoryID)

	all, err := s.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.StoryID, all[0].StoryID, "newest first")

	u, err := s.GetUser(ctx, alice, "alice")
	require.NoError(t, err)
	assert.Len(t, u.Stories, 2)
}

func TestCreateStory_Rejected(t *testing.T) {
	s := newStoryService(t)
	alice := signup(t, s, "alice")

	tests := []struct {
		name  string
		token string
		story models.NewStory
		want  error
	}{
		{name: "no token", story: models.NewStory{Title: "t", Author: "a", URL: "https://x.io"}, want: service.ErrUnauthorized},
		{name: "missing title", token: alice, story: models.NewStory{Author: "a", URL: "https://x.io"}, want: service.ErrInvalid},
		{name: "relative url", token: alice, story: models.NewStory{Title: "t", Author: "a", URL: "x.io/page"}, want: service.ErrInvalid},
		{name: "ftp url", token: alice, story: models.NewStory{Title: "t", Author: "a", URL: "ftp://x.io"}, want: service.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateStory(context.Background(), tt.token, tt.story)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteStory(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	st := post(t, s, alice, "mine")
	_, err := s.AddFavorite(ctx, bob, "bob", st.StoryID)
	require.NoError(t, err)

	_, err = s.DeleteStory(ctx, bob, st.StoryID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	deleted, err := s.DeleteStory(ctx, alice, st.StoryID)
	require.NoError(t, err)
	assert.Equal(t, st.StoryID, deleted.StoryID)

	_, err = s.DeleteStory(ctx, alice, st.StoryID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	u, err := s.GetUser(ctx, bob, "bob")
	require.NoError(t, err)
	assert.Empty(t, u.Favorites, "deleted story leaves every favorites list")
}

func TestFavorites(t *testing.T) {
	s := newStoryService(t)
	ctx := context.Background()
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")
	st := post(t, s, bob, "news")

	u, err := s.AddFavorite(ctx, alice, "alice", st.StoryID)
	require.NoError(t, err)
	require.Len(t, u.Favorites, 1)

	u, err = s.AddFavorite(ctx, alice, "alice", st.StoryID)
	require.NoError(t, err)
	assert.Len(t, u.Favorites, 1, "adding twice is idempotent")

	_, err = s.AddFavorite(ctx, bob, "alice", st.StoryID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = s.AddFavorite(ctx, alice, "alice", "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)

	u, err = s.RemoveFavorite(ctx, alice, "alice", st.StoryID)
	require.NoError(t, err)
	assert.Empty(t, u.Favorites)
}

func TestErrorCarriesMessage(t *testing.T) {
	s := newStoryService(t)
	signup(t, s, "alice")

	_, _, err := s.Signup(context.Background(), models.Credentials{Username: "alice", Password: "pw", Name: "A"})

	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "There already exists a user with username 'alice'", svcErr.Message)
}
