package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

type DeleteHandler struct {
	service service.StoryServiceIface
	logger  *zap.Logger
}

func NewDelete(s service.StoryServiceIface, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		service: s,
		logger:  l,
	}
}

// Story handles DELETE /stories/{storyId}.
func (h *DeleteHandler) Story(res http.ResponseWriter, req *http.Request) {
	token, err := readToken(res, req)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	story, err := h.service.DeleteStory(ctx, token, chi.URLParam(req, "storyId"))
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.StoryResponse{Story: story})
}

// Favorite handles DELETE /users/{username}/favorites/{storyId}.
func (h *DeleteHandler) Favorite(res http.ResponseWriter, req *http.Request) {
	token, err := readToken(res, req)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	u, err := h.service.RemoveFavorite(ctx, token, chi.URLParam(req, "username"), chi.URLParam(req, "storyId"))
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.UserResponse{Message: "Favorite Removed Successfully!", User: u})
}
