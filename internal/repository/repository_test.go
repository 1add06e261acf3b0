package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/storage"
)

var created = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *StoryRepository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, CreateStoryRepository(db, zap.NewNop())
}

func storyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "title", "author", "url", "created_at", "updated_at"})
}

func TestCreateUser(t *testing.T) {
	mock, repo := setupMockDB(t)

	u := storage.UserRecord{Username: "alice", Name: "Alice", PasswordHash: "hash", CreatedAt: created, UpdatedAt: created}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(u.Username, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateUser(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Conflict(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.CreateUser(context.Background(), storage.UserRecord{Username: "alice"})

	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, repo := setupMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT username, name, password_hash, created_at, updated_at FROM users WHERE username = $1;")).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"username", "name", "password_hash", "created_at", "updated_at"}).
				AddRow("alice", "Alice", "hash", created, created))

		u, err := repo.FindUser(context.Background(), "alice")

		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "hash", u.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := setupMockDB(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1;")).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUser(context.Background(), "ghost")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCreateStory(t *testing.T) {
	mock, repo := setupMockDB(t)

	s := storage.StoryRecord{
		ID: "11111111-1111-1111-1111-111111111111", Username: "alice",
		Title: "T", Author: "A", URL: "https://a.io", CreatedAt: created, UpdatedAt: created,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stories (" + storyColumns + ")")).
		WithArgs(s.ID, s.Username, s.Title, s.Author, s.URL, s.CreatedAt, s.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateStory(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateStory_UnknownUser(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO stories")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	err := repo.CreateStory(context.Background(), storage.StoryRecord{ID: "x", Username: "ghost"})

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindStory_InvalidID(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stories WHERE id = $1;")).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})

	_, err := repo.FindStory(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListStories(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + storyColumns + " FROM stories ORDER BY created_at DESC;")).
		WillReturnRows(storyRows().
			AddRow("s2", "bob", "T2", "A2", "https://b.io", created.Add(time.Hour), created).
			AddRow("s1", "alice", "T1", "A1", "https://a.io", created, created))

	stories, err := repo.ListStories(context.Background())

	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "s2", stories[0].ID)
	assert.Equal(t, "alice", stories[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoriesByUser_Empty(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM stories WHERE username = $1 ORDER BY created_at DESC;")).
		WithArgs("alice").
		WillReturnRows(storyRows())

	stories, err := repo.StoriesByUser(context.Background(), "alice")

	require.NoError(t, err)
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}

func TestFavorites(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`FROM favorites f JOIN stories s ON s.id = f.story_id\s+WHERE f.username = \$1 ORDER BY f.position;`).
		WithArgs("alice").
		WillReturnRows(storyRows().AddRow("s1", "bob", "T1", "A1", "https://a.io", created, created))

	favs, err := repo.Favorites(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "s1", favs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStory(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock, repo := setupMockDB(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stories WHERE id = $1;")).
			WithArgs("s1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteStory(context.Background(), "s1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := setupMockDB(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stories WHERE id = $1;")).
			WithArgs("s1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteStory(context.Background(), "s1"), storage.ErrNotFound)
	})
}

func TestAddAndRemoveFavorite(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites (username, story_id) VALUES ($1, $2) ON CONFLICT (username, story_id) DO NOTHING;")).
		WithArgs("alice", "s1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE username = $1 AND story_id = $2;")).
		WithArgs("alice", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddFavorite(context.Background(), "alice", "s1"))
	require.NoError(t, repo.RemoveFavorite(context.Background(), "alice", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavorite_UnknownStory(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

	assert.ErrorIs(t, repo.AddFavorite(context.Background(), "alice", "s1"), storage.ErrNotFound)
}

func TestUnexpectedErrorIsWrapped(t *testing.T) {
	mock, repo := setupMockDB(t)

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites")).WillReturnError(boom)

	err := repo.RemoveFavorite(context.Background(), "alice", "s1")

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "remove favorite")
}
