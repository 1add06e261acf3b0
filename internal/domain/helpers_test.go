package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/domain"
	"github.com/atinyakov/hack-or-snooze/internal/mocks"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

const password = "hunter2"

func newService(t *testing.T) (*mocks.MockAPI, *domain.Service) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)

	return api, domain.NewService(api, zap.NewNop())
}

func record(id, username string) models.StoryRecord {
	return models.StoryRecord{
		StoryID:   id,
		Title:     "Story " + id,
		Author:    "Author " + id,
		URL:       "https://example.com/" + id,
		Username:  username,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func userRecord(username string, own, favorites []models.StoryRecord) models.UserRecord {
	return models.UserRecord{
		Username:  username,
		Name:      "Name of " + username,
		CreatedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Stories:   own,
		Favorites: favorites,
	}
}

func fetchAll(t *testing.T, api *mocks.MockAPI, svc *domain.Service, recs ...models.StoryRecord) *domain.StoryList {
	t.Helper()

	api.EXPECT().ListStories(gomock.Any()).Return(recs, nil)

	l, err := svc.FetchAll(context.Background())
	require.NoError(t, err)

	return l
}

func login(t *testing.T, api *mocks.MockAPI, svc *domain.Service, rec models.UserRecord) *domain.User {
	t.Helper()

	api.EXPECT().Login(gomock.Any(), rec.Username, password).Return(rec, "token-"+rec.Username, nil)

	u, err := svc.Login(context.Background(), rec.Username, password)
	require.NoError(t, err)

	return u
}

func ids(stories []domain.Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}
