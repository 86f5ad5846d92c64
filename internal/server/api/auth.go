package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"picvault/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register handles account registration.
//
// Responses:
//   - 201 Created: registration succeeded;
//   - 400 Bad Request: malformed JSON, missing fields, or duplicate email;
//   - 500 Internal Server Error: anything else.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, common.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "user already exists")
		default:
			h.logger.Error(r.Context(), "register failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Login verifies credentials and returns a bearer token.
//
// Responses:
//   - 200 OK: {token};
//   - 400 Bad Request: malformed JSON;
//   - 401 Unauthorized: unknown email or wrong password;
//   - 500 Internal Server Error: anything else.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.logger.Error(r.Context(), "login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// Protected is a probe for token validity: it simply greets the
// authenticated account.
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Hello, %s!", email)})
}
