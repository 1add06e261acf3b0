// Package apiclient talks JSON to the remote story service. Transport
// failures come back as *models.NetworkError, non-2xx responses as
// *models.APIError (or *models.AuthError for 401).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/models"
)

// DefaultTimeout bounds a single request when the caller does not pick one.
const DefaultTimeout = 15 * time.Second

const maxErrorText = 256

type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q: %w", baseURL, models.ErrMalformedURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

func (c *Client) ListStories(ctx context.Context) ([]models.StoryRecord, error) {
	var resp models.StoriesResponse
	if err := c.do(ctx, "list stories", http.MethodGet, "/stories", nil, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Stories, nil
}

func (c *Client) CreateStory(ctx context.Context, token string, story models.NewStory) (models.StoryRecord, error) {
	req := models.StoryRequest{Token: token, Story: story}

	var resp models.StoryResponse
	if err := c.do(ctx, "create story", http.MethodPost, "/stories", nil, req, &resp); err != nil {
		return models.StoryRecord{}, err
	}

	return resp.Story, nil
}

func (c *Client) DeleteStory(ctx context.Context, token string, storyID string) error {
	return c.do(ctx, "delete story", http.MethodDelete,
		"/stories/"+url.PathEscape(storyID), nil, models.TokenRequest{Token: token}, nil)
}

func (c *Client) Signup(ctx context.Context, username, password, name string) (models.UserRecord, string, error) {
	req := models.AuthRequest{User: models.Credentials{
		Username: username,
		Password: password,
		Name:     name,
	}}

	return c.auth(ctx, "signup", "/signup", req)
}

func (c *Client) Login(ctx context.Context, username, password string) (models.UserRecord, string, error) {
	req := models.AuthRequest{User: models.Credentials{
		Username: username,
		Password: password,
	}}

	rec, token, err := c.auth(ctx, "login", "/login", req)

	// an unknown username is answered with 404
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return models.UserRecord{}, "", &models.AuthError{APIError: *apiErr}
	}

	return rec, token, err
}

func (c *Client) GetUser(ctx context.Context, token string, username string) (models.UserRecord, error) {
	query := url.Values{"token": []string{token}}

	var resp models.UserResponse
	if err := c.do(ctx, "get user", http.MethodGet, "/users/"+url.PathEscape(username), query, nil, &resp); err != nil {
		return models.UserRecord{}, err
	}

	return resp.User, nil
}

func (c *Client) AddFavorite(ctx context.Context, token string, username string, storyID string) error {
	return c.do(ctx, "add favorite", http.MethodPost,
		favoritePath(username, storyID), nil, models.TokenRequest{Token: token}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, username string, storyID string) error {
	return c.do(ctx, "remove favorite", http.MethodDelete,
		favoritePath(username, storyID), nil, models.TokenRequest{Token: token}, nil)
}

func (c *Client) auth(ctx context.Context, op, path string, req models.AuthRequest) (models.UserRecord, string, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, op, http.MethodPost, path, nil, req, &resp); err != nil {
		return models.UserRecord{}, "", err
	}

	return resp.User, resp.Token, nil
}

func favoritePath(username, storyID string) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
}

// do sends one request. A nil out skips decoding the success payload.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	u, err := url.Parse(c.base.String() + path)
	if err != nil {
		return fmt.Errorf("%s: build url: %w", op, err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.Error(err))
		return &models.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

// decodeError maps an error response to the models error taxonomy. Bodies
// that are not the service's error shape keep the status and its text.
func decodeError(status int, payload []byte) error {
	var er models.ErrorResponse
	if err := json.Unmarshal(payload, &er); err != nil {
		msg := strings.TrimSpace(string(payload))
		if len(msg) > maxErrorText {
			msg = msg[:maxErrorText]
		}
		return models.NewAPIError(status, http.StatusText(status), msg)
	}

	title := er.Error.Title
	if title == "" {
		title = http.StatusText(status)
	}

	return models.NewAPIError(status, title, er.Error.Message)
}
