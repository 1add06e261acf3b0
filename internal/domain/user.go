package domain

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// User is the logged-in account. A User always carries a login token; an
// anonymous session has no User at all.
type User struct {
	Username  string
	Name      string
	CreatedAt time.Time

	token   string
	api     API
	catalog *Catalog
	logger  *zap.Logger

	ownStories idList
	favorites  idList
}

// Token is the credential sent with every per-user API call.
func (u *User) Token() string {
	return u.token
}

// OwnStories returns the stories u has posted, newest first.
func (u *User) OwnStories() []Story {
	u.catalog.mu.RLock()
	defer u.catalog.mu.RUnlock()

	return u.catalog.storiesLocked(u.ownStories.ids)
}

// Favorites returns u's favorite stories in the order they were added.
func (u *User) Favorites() []Story {
	u.catalog.mu.RLock()
	defer u.catalog.mu.RUnlock()

	return u.catalog.storiesLocked(u.favorites.ids)
}

func (u *User) IsFavorite(s Story) bool {
	u.catalog.mu.RLock()
	defer u.catalog.mu.RUnlock()

	return u.favorites.contains(s.ID)
}

// OwnsStory reports whether u posted the story with the given id.
func (u *User) OwnsStory(storyID string) bool {
	u.catalog.mu.RLock()
	defer u.catalog.mu.RUnlock()

	return u.ownStories.contains(storyID)
}

// AddFavorite marks s as a favorite. The local list changes before the API
// call and is restored if the call fails. Adding a story that is already a
// favorite does nothing.
func (u *User) AddFavorite(ctx context.Context, s Story) error {
	u.catalog.mu.Lock()
	added := u.favorites.append(u.catalog, s)
	u.catalog.mu.Unlock()

	if !added {
		return nil
	}

	if err := u.api.AddFavorite(ctx, u.token, u.Username, s.ID); err != nil {
		u.catalog.mu.Lock()
		u.favorites.remove(u.catalog, s.ID)
		u.catalog.mu.Unlock()

		u.logger.Warn("favorite reverted",
			zap.String("storyID", s.ID),
			zap.String("username", u.Username),
			zap.Error(err))

		return err
	}

	return nil
}

// RemoveFavorite unmarks s. The local list changes before the API call and
// the story is put back at its old position if the call fails.
func (u *User) RemoveFavorite(ctx context.Context, s Story) error {
	u.catalog.mu.Lock()
	prev := u.favorites.remove(u.catalog, s.ID)
	u.catalog.mu.Unlock()

	if err := u.api.RemoveFavorite(ctx, u.token, u.Username, s.ID); err != nil {
		if prev >= 0 {
			u.catalog.mu.Lock()
			u.favorites.insert(u.catalog, prev, s)
			u.catalog.mu.Unlock()

			u.logger.Warn("unfavorite reverted",
				zap.String("storyID", s.ID),
				zap.String("username", u.Username),
				zap.Error(err))
		}

		return err
	}

	return nil
}

// ToggleFavorite flips the favorite state of s and returns the new state.
func (u *User) ToggleFavorite(ctx context.Context, s Story) (bool, error) {
	if u.IsFavorite(s) {
		if err := u.RemoveFavorite(ctx, s); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := u.AddFavorite(ctx, s); err != nil {
		return false, err
	}
	return true, nil
}

// Release drops u's references from the shared catalog. It is called when
// the user logs out; u must not be used afterwards.
func (u *User) Release() {
	u.catalog.mu.Lock()
	defer u.catalog.mu.Unlock()

	for _, id := range u.ownStories.snapshot() {
		u.ownStories.remove(u.catalog, id)
	}
	for _, id := range u.favorites.snapshot() {
		u.favorites.remove(u.catalog, id)
	}
}
