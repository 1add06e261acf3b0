package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/models"
)

type GetHandler struct {
	service service.StoryServiceIface
	logger  *zap.Logger
}

func NewGet(s service.StoryServiceIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		logger:  l,
	}
}

// Stories handles GET /stories.
func (h *GetHandler) Stories(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	stories, err := h.service.ListStories(ctx)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.StoriesResponse{Stories: stories})
}

// User handles GET /users/{username}?token=...
func (h *GetHandler) User(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	username := chi.URLParam(req, "username")
	token := req.URL.Query().Get("token")

	u, err := h.service.GetUser(ctx, token, username)
	if err != nil {
		writeError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.UserResponse{User: u})
}

func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	if err := h.service.PingContext(ctx); err != nil {
		h.logger.Error("ping failed", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
