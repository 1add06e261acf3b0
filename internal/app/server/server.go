// Package server wires the story API routes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/hack-or-snooze/internal/app/handler"
	"github.com/atinyakov/hack-or-snooze/internal/app/service"
	"github.com/atinyakov/hack-or-snooze/internal/middleware"
)

func Init(s service.StoryServiceIface, logger *zap.Logger) *chi.Mux {
	get := handler.NewGet(s, logger)
	post := handler.NewPost(s, logger)
	del := handler.NewDelete(s, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzip(logger))

	r.Get("/ping", get.PingDB)

	r.Post("/signup", post.Signup)
	r.Post("/login", post.Login)

	r.Route("/stories", func(r chi.Router) {
		r.Get("/", get.Stories)
		r.Post("/", post.Story)
		r.Delete("/{storyId}", del.Story)
	})

	r.Route("/users/{username}", func(r chi.Router) {
		r.Get("/", get.User)
		r.Post("/favorites/{storyId}", post.Favorite)
		r.Delete("/favorites/{storyId}", del.Favorite)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
