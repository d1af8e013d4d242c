package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/apperror"
	"github.com/dverano/tasklist-be/internal/auth"
	"github.com/dverano/tasklist-be/internal/services"
)

// UserHandler handles registration and login.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, r, apperror.NewValidation("invalid request body"))
		return
	}

	user, err := h.service.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("Registered user")
	respondJSON(w, http.StatusOK, map[string]string{"message": "user created"})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, r, apperror.NewValidation("invalid request body"))
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		respondError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to sign token")
		respondError(w, r, apperror.NewInternal("server error", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
