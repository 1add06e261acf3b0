// Package storage holds the records of the reference story server and an
// in-memory store for them.
package storage

import (
	"context"
	"slices"
	"sync"
)

type MemoryStorage struct {
	mu sync.RWMutex

	users   map[string]UserRecord
	stories map[string]StoryRecord
	// order keeps insertion order so equal timestamps still list newest first.
	order     []string
	favorites map[string][]string
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		users:     make(map[string]UserRecord),
		stories:   make(map[string]StoryRecord),
		favorites: make(map[string][]string),
	}, nil
}

func (m *MemoryStorage) CreateUser(_ context.Context, u UserRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[u.Username]; exists {
		return ErrConflict
	}
	m.users[u.Username] = u

	return nil
}

func (m *MemoryStorage) FindUser(_ context.Context, username string) (UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return UserRecord{}, ErrNotFound
	}

	return u, nil
}

func (m *MemoryStorage) CreateStory(_ context.Context, s StoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[s.Username]; !ok {
		return ErrNotFound
	}
	if _, exists := m.stories[s.ID]; exists {
		return ErrConflict
	}

	m.stories[s.ID] = s
	m.order = append(m.order, s.ID)

	return nil
}

func (m *MemoryStorage) FindStory(_ context.Context, id string) (StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stories[id]
	if !ok {
		return StoryRecord{}, ErrNotFound
	}

	return s, nil
}

// ListStories returns every story, newest first.
func (m *MemoryStorage) ListStories(_ context.Context) ([]StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.newestFirstLocked(func(StoryRecord) bool { return true }), nil
}

// StoriesByUser returns the stories username posted, newest first.
func (m *MemoryStorage) StoriesByUser(_ context.Context, username string) ([]StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.newestFirstLocked(func(s StoryRecord) bool { return s.Username == username }), nil
}

func (m *MemoryStorage) newestFirstLocked(keep func(StoryRecord) bool) []StoryRecord {
	out := make([]StoryRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if s := m.stories[m.order[i]]; keep(s) {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b StoryRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

// DeleteStory removes the story and every favorite pointing at it.
func (m *MemoryStorage) DeleteStory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stories[id]; !ok {
		return ErrNotFound
	}

	delete(m.stories, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })
	for username, ids := range m.favorites {
		m.favorites[username] = slices.DeleteFunc(ids, func(v string) bool { return v == id })
	}

	return nil
}

// AddFavorite is idempotent.
func (m *MemoryStorage) AddFavorite(_ context.Context, username, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; !ok {
		return ErrNotFound
	}
	if _, ok := m.stories[storyID]; !ok {
		return ErrNotFound
	}
	if slices.Contains(m.favorites[username], storyID) {
		return nil
	}

	m.favorites[username] = append(m.favorites[username], storyID)

	return nil
}

func (m *MemoryStorage) RemoveFavorite(_ context.Context, username, storyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, ok := m.favorites[username]
	if !ok {
		return nil
	}
	m.favorites[username] = slices.DeleteFunc(ids, func(v string) bool { return v == storyID })

	return nil
}

// Favorites returns username's favorites in the order they were added.
func (m *MemoryStorage) Favorites(_ context.Context, username string) ([]StoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.favorites[username]
	out := make([]StoryRecord, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.stories[id]; ok {
			out = append(out, s)
		}
	}

	return out, nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return nil
}
