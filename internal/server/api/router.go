package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"picvault/internal/logging"
)

// NewRouter wires all routes. Everything under /api except /register and
// /login requires a valid bearer token.
func NewRouter(h *Handler, secretKey []byte, l logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(l))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(secretKey))
			r.Get("/protected", h.Protected)
			r.Post("/upload", h.Upload)
			r.Get("/images", h.ListImages)
			r.Post("/analyze", h.Analyze)
		})
	})

	return r
}
