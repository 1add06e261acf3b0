// Package models defines the request and response data structures exchanged
// with the story-sharing API, together with the error types both sides of
// that exchange agree on.
package models

import "time"

// StoryRecord is a story as the API serialises it.
type StoryRecord struct {
	StoryID   string    `json:"storyId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRecord is a user profile as the API serialises it. The API calls the
// stories a user authored "stories".
type UserRecord struct {
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Favorites []StoryRecord `json:"favorites"`
	Stories   []StoryRecord `json:"stories"`
}

// NewStory carries the fields a client supplies when posting a story.
type NewStory struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Credentials is the user part of a signup or login request. Name is only
// sent on signup.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// StoriesResponse is the body of GET /stories.
type StoriesResponse struct {
	Stories []StoryRecord `json:"stories"`
}

// StoryRequest is the body of POST /stories.
type StoryRequest struct {
	Token string   `json:"token"`
	Story NewStory `json:"story"`
}

// StoryResponse wraps a single story.
type StoryResponse struct {
	Story StoryRecord `json:"story"`
}

// AuthRequest is the body of POST /signup and POST /login.
type AuthRequest struct {
	User Credentials `json:"user"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  UserRecord `json:"user"`
	Token string     `json:"token"`
}

// UserResponse is returned by GET /users/{username} and the favorite
// endpoints.
type UserResponse struct {
	Message string     `json:"message,omitempty"`
	User    UserRecord `json:"user"`
}

// TokenRequest is the body of the token-only mutating calls
// (story deletion, favorite add/remove).
type TokenRequest struct {
	Token string `json:"token"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Status  int    `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
