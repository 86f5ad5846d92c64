// Package api implements the HTTP layer of the picvault server: route
// registration (chi), request decoding, mapping of service errors to HTTP
// statuses, and the bearer-token middleware that gates protected routes.
//
// Responses carry short machine-stable messages only; internal error text
// never reaches the client.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"picvault/internal/logging"
	"picvault/internal/server/models"
	"picvault/internal/server/services"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)

// userService is the part of the auth service the HTTP layer consumes.
type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// imageService is the part of the image service the HTTP layer consumes.
type imageService interface {
	Upload(ctx context.Context, email, fileName, contentType string, body io.Reader) (*models.Image, error)
	ListImages(ctx context.Context, email string) ([]services.ImageLink, error)
	Analyze(ctx context.Context, imageURL string) (string, error)
}

// Handler aggregates the HTTP layer's dependencies and provides the
// handler methods registered by the router.
type Handler struct {
	users  userService
	images imageService
	logger logging.Logger
}

func NewHandler(us userService, is imageService, l logging.Logger) *Handler {
	return &Handler{
		users:  us,
		images: is,
		logger: l.With("module", "http_api"),
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(contentTypeHeader, jsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
