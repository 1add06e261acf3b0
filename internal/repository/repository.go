// Package repository is the Postgres storage of the reference story server.
package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// InitDB opens the database and brings its schema up to date.
func InitDB(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := migrateUp(db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func migrateUp(db *sql.DB, logger *zap.Logger) error {
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migrations source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("no migrations to apply")
		return nil
	}

	version, dirty, err := m.Version()
	if err != nil {
		logger.Warn("cannot read migration version", zap.Error(err))
		return nil
	}
	logger.Info("database migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}

type StoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreateStoryRepository(db *sql.DB, logger *zap.Logger) *StoryRepository {
	return &StoryRepository{
		db:     db,
		logger: logger,
	}
}

const storyColumns = "id, username, title, author, url, created_at, updated_at"

func (r *StoryRepository) CreateUser(ctx context.Context, u storage.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, name, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5);",
		u.Username, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return r.mapError("create user", err)
	}

	return nil
}

func (r *StoryRepository) FindUser(ctx context.Context, username string) (storage.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT username, name, password_hash, created_at, updated_at FROM users WHERE username = $1;",
		username,
	)

	var u storage.UserRecord
	if err := row.Scan(&u.Username, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return storage.UserRecord{}, r.mapError("find user", err)
	}

	return u, nil
}

func (r *StoryRepository) CreateStory(ctx context.Context, s storage.StoryRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO stories ("+storyColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7);",
		s.ID, s.Username, s.Title, s.Author, s.URL, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return r.mapError("create story", err)
	}

	return nil
}

func (r *StoryRepository) FindStory(ctx context.Context, id string) (storage.StoryRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+storyColumns+" FROM stories WHERE id = $1;", id)

	var s storage.StoryRecord
	if err := row.Scan(&s.ID, &s.Username, &s.Title, &s.Author, &s.URL, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return storage.StoryRecord{}, r.mapError("find story", err)
	}

	return s, nil
}

func (r *StoryRepository) ListStories(ctx context.Context) ([]storage.StoryRecord, error) {
	return r.queryStories(ctx, "list stories",
		"SELECT "+storyColumns+" FROM stories ORDER BY created_at DESC;")
}

func (r *StoryRepository) StoriesByUser(ctx context.Context, username string) ([]storage.StoryRecord, error) {
	return r.queryStories(ctx, "stories by user",
		"SELECT "+storyColumns+" FROM stories WHERE username = $1 ORDER BY created_at DESC;", username)
}

func (r *StoryRepository) Favorites(ctx context.Context, username string) ([]storage.StoryRecord, error) {
	return r.queryStories(ctx, "favorites",
		`SELECT s.id, s.username, s.title, s.author, s.url, s.created_at, s.updated_at
		FROM favorites f JOIN stories s ON s.id = f.story_id
		WHERE f.username = $1 ORDER BY f.position;`, username)
}

// DeleteStory relies on ON DELETE CASCADE to drop favorites.
func (r *StoryRepository) DeleteStory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stories WHERE id = $1;", id)
	if err != nil {
		return r.mapError("delete story", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (r *StoryRepository) AddFavorite(ctx context.Context, username, storyID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (username, story_id) VALUES ($1, $2) ON CONFLICT (username, story_id) DO NOTHING;",
		username, storyID,
	)
	if err != nil {
		return r.mapError("add favorite", err)
	}

	return nil
}

func (r *StoryRepository) RemoveFavorite(ctx context.Context, username, storyID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE username = $1 AND story_id = $2;",
		username, storyID,
	)
	if err != nil {
		return r.mapError("remove favorite", err)
	}

	return nil
}

func (r *StoryRepository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *StoryRepository) queryStories(ctx context.Context, op, query string, args ...any) ([]storage.StoryRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(op, err)
	}
	defer rows.Close()

	records := make([]storage.StoryRecord, 0)
	for rows.Next() {
		var s storage.StoryRecord
		if err := rows.Scan(&s.ID, &s.Username, &s.Title, &s.Author, &s.URL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// mapError translates driver errors into storage sentinels.
func (r *StoryRepository) mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return storage.ErrConflict
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			return storage.ErrNotFound
		}
	}

	r.logger.Error("query failed", zap.String("op", op), zap.Error(err))

	return fmt.Errorf("%s: %w", op, err)
}
