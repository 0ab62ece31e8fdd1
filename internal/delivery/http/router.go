package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

func NewRouter(h *HTTPHandler, l logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logger.HTTPLogger(l))

	r.Get("/healthz", h.HealthCheck)
	r.Get("/ws", h.ServeWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/snapshot", h.GetSnapshot)
		r.Post("/commands", h.PostCommand)
	})

	return r
}
