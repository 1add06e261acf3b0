package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

type PostHandler struct {
	service service.StoryServiceIface
	logger  *zap.Logger
}

func NewPost(s service.StoryServiceIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		service: s,
		logger:  l,
	}
}

// Signup handles POST /signup.
func (h *PostHandler) Signup(res http.ResponseWriter, req *http.Request) {
	var request models.AuthRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	u, token, err := h.service.Signup(ctx, request.User)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.AuthResponse{User: u, Token: token})
}

// Login handles POST /login.
func (h *PostHandler) Login(res http.ResponseWriter, req *http.Request) {
	var request models.AuthRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	u, token, err := h.service.Login(ctx, request.User)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.AuthResponse{User: u, Token: token})
}

// Story handles POST /stories.
func (h *PostHandler) Story(res http.ResponseWriter, req *http.Request) {
	var request models.StoryRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	story, err := h.service.CreateStory(ctx, request.Token, request.Story)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.StoryResponse{Story: story})
}

// Favorite handles POST /users/{username}/favorites/{storyId}.
func (h *PostHandler) Favorite(res http.ResponseWriter, req *http.Request) {
	token, err := readToken(res, req)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	u, err := h.service.AddFavorite(ctx, token, chi.URLParam(req, "username"), chi.URLParam(req, "storyId"))
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.UserResponse{Message: "Favorite Added Successfully!", User: u})
}
