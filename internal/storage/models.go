package storage

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("data conflict")
)

// UserRecord is a stored account.
type UserRecord struct {
	Username     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StoryRecord is a stored story.
type StoryRecord struct {
	ID        string
	Username  string
	Title     string
	Author    string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
