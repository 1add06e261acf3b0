package domain_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atinyakov/hack-or-snooze/internal/domain"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

func TestFetchAll_PreservesServerOrder(t *testing.T) {
	api, svc := newService(t)

	l := fetchAll(t, api, svc, record("c", "bob"), record("a", "alice"), record("b", "bob"))

	assert.Equal(t, []string{"c", "a", "b"}, l.IDs())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "Story a", l.Stories()[1].Title)
}

func TestFetchAll_DropsDuplicateIDs(t *testing.T) {
	api, svc := newService(t)

	l := fetchAll(t, api, svc, record("a", "alice"), record("b", "bob"), record("a", "alice"))

	assert.Equal(t, []string{"a", "b"}, l.IDs())
}

func TestFetchAll_Error(t *testing.T) {
	api, svc := newService(t)

	netErr := &models.NetworkError{Op: "list stories", Err: errors.New("connection refused")}
	api.EXPECT().ListStories(gomock.Any()).Return(nil, netErr)

	l, err := svc.FetchAll(context.Background())

	require.Nil(t, l)
	require.ErrorIs(t, err, netErr)
	assert.Equal(t, 0, svc.Catalog().Len())
}

func TestStoryList_Find(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("a", "alice"), record("b", "bob"))

	s, ok := l.Find("b")
	require.True(t, ok)
	assert.Equal(t, "bob", s.Username)

	_, ok = l.Find("zzz")
	assert.False(t, ok)
}

func TestAddStory(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("a", "bob"), record("b", "bob"))
	u := login(t, api, svc, userRecord("alice", []models.StoryRecord{record("old", "alice")}, nil))

	created := record("new-id", "alice")
	api.EXPECT().
		CreateStory(gomock.Any(), "token-alice", models.NewStory{
			Title:  "Story new-id",
			Author: "Author new-id",
			URL:    "https://example.com/new-id",
		}).
		Return(created, nil)

	s, err := l.AddStory(context.Background(), u, domain.NewStoryInput{
		Title:  "  Story new-id ",
		Author: "Author new-id",
		URL:    " https://example.com/new-id",
	})
	require.NoError(t, err)

	assert.Equal(t, "new-id", s.ID)
	assert.Equal(t, []string{"new-id", "a", "b"}, l.IDs())
	assert.Equal(t, []string{"new-id", "old"}, ids(u.OwnStories()))
	assert.Equal(t, s, l.Stories()[0])
	assert.Equal(t, s, u.OwnStories()[0])
	assert.True(t, u.OwnsStory("new-id"))
}

func TestAddStory_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   domain.NewStoryInput
	}{
		{name: "no title", in: domain.NewStoryInput{Author: "a", URL: "https://x.io"}},
		{name: "no author", in: domain.NewStoryInput{Title: "t", URL: "https://x.io"}},
		{name: "no url", in: domain.NewStoryInput{Title: "t", Author: "a"}},
		{name: "blank title", in: domain.NewStoryInput{Title: "   ", Author: "a", URL: "https://x.io"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := newService(t)
			l := fetchAll(t, api, svc, record("a", "bob"))
			u := login(t, api, svc, userRecord("alice", nil, nil))

			_, err := l.AddStory(context.Background(), u, tt.in)

			require.ErrorIs(t, err, models.ErrInvalidData)
			assert.Equal(t, []string{"a"}, l.IDs())
			assert.Empty(t, u.OwnStories())
		})
	}
}

func TestAddStory_RequiresUser(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc)

	_, err := l.AddStory(context.Background(), nil, domain.NewStoryInput{Title: "t", Author: "a", URL: "https://x.io"})

	require.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestStoryList_RejectsUserOfAnotherService(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("b", "bob"))

	otherAPI, other := newService(t)
	u := login(t, otherAPI, other, userRecord("alice", nil, nil))

	_, err := l.AddStory(context.Background(), u, domain.NewStoryInput{Title: "t", Author: "a", URL: "https://x.io"})
	require.ErrorIs(t, err, domain.ErrForeignUser)

	require.ErrorIs(t, l.RemoveStory(context.Background(), u, "b"), domain.ErrForeignUser)

	assert.Equal(t, []string{"b"}, l.IDs())
	assert.Empty(t, u.OwnStories())
	assert.False(t, u.OwnsStory("b"))
	assert.Equal(t, 1, svc.Catalog().Len())
	assert.Equal(t, 0, other.Catalog().Len())
}

func TestAddStory_RemoteFailureLeavesListsUntouched(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("a", "bob"))
	u := login(t, api, svc, userRecord("alice", nil, nil))

	apiErr := models.NewAPIError(http.StatusBadRequest, "Bad Request", "url must be a valid URL")
	api.EXPECT().CreateStory(gomock.Any(), "token-alice", gomock.Any()).Return(models.StoryRecord{}, apiErr)

	_, err := l.AddStory(context.Background(), u, domain.NewStoryInput{Title: "t", Author: "a", URL: "nope"})

	require.Equal(t, apiErr, err)
	assert.Equal(t, []string{"a"}, l.IDs())
	assert.Empty(t, u.OwnStories())
}

func TestRemoveStory_AuthorDeletesOwnStory(t *testing.T) {
	api, svc := newService(t)
	a := record("A", "alice")
	l := fetchAll(t, api, svc, a, record("B", "bob"))
	alice := login(t, api, svc, userRecord("alice", []models.StoryRecord{a}, nil))

	api.EXPECT().DeleteStory(gomock.Any(), "token-alice", "A").Return(nil)

	require.NoError(t, l.RemoveStory(context.Background(), alice, "A"))

	assert.Equal(t, []string{"B"}, l.IDs())
	assert.Empty(t, alice.OwnStories())
}

func TestRemoveStory_FiltersEveryListAndKeepsOrder(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("A", "x"), record("B", "alice"), record("C", "x"), record("D", "alice"))
	u := login(t, api, svc, userRecord("alice",
		[]models.StoryRecord{record("B", "alice"), record("D", "alice")},
		[]models.StoryRecord{record("C", "x"), record("B", "alice"), record("A", "x")},
	))

	api.EXPECT().DeleteStory(gomock.Any(), "token-alice", "B").Return(nil)

	require.NoError(t, l.RemoveStory(context.Background(), u, "B"))

	if diff := cmp.Diff([]string{"A", "C", "D"}, l.IDs()); diff != "" {
		t.Errorf("global list (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"D"}, ids(u.OwnStories())); diff != "" {
		t.Errorf("own stories (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"C", "A"}, ids(u.Favorites())); diff != "" {
		t.Errorf("favorites (-want +got):\n%s", diff)
	}

	_, ok := svc.Catalog().Lookup("B")
	assert.False(t, ok, "deleted story must leave the catalog")
}

func TestRemoveStory_RemoteFailureLeavesListsUntouched(t *testing.T) {
	api, svc := newService(t)
	a := record("A", "alice")
	l := fetchAll(t, api, svc, a, record("B", "bob"))
	u := login(t, api, svc, userRecord("alice", []models.StoryRecord{a}, []models.StoryRecord{a}))

	apiErr := models.NewAPIError(http.StatusForbidden, "Forbidden", "only the author can delete a story")
	api.EXPECT().DeleteStory(gomock.Any(), "token-alice", "A").Return(apiErr)

	err := l.RemoveStory(context.Background(), u, "A")

	require.Equal(t, apiErr, err)
	assert.Equal(t, []string{"A", "B"}, l.IDs())
	assert.Equal(t, []string{"A"}, ids(u.OwnStories()))
	assert.Equal(t, []string{"A"}, ids(u.Favorites()))
}

func TestRemoveStory_RequiresUser(t *testing.T) {
	api, svc := newService(t)
	l := fetchAll(t, api, svc, record("A", "alice"))

	err := l.RemoveStory(context.Background(), nil, "A")

	require.ErrorIs(t, err, models.ErrNotAuthenticated)
	assert.Equal(t, []string{"A"}, l.IDs())
}
