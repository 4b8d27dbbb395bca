package handlers

import (
	"encoding/json"
	"net/http"

	"cafe-menu/internal/middleware"
	"cafe-menu/internal/models"
	"cafe-menu/internal/services"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	users  *services.UserService
	auth   *services.AuthService
	logger zerolog.Logger
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		auth:   auth,
		logger: logger,
	}
}

type loginResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	User    *models.PublicUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(&req)
	if err != nil {
		h.logger.Warn().Str("username", req.Username).Msg("Login failed")
		respondWithServiceError(w, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("Token generation failed")
		respondWithError(w, http.StatusInternalServerError, "token_generation_failed", "Failed to generate token")
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User:    user.Public(),
	})
}

// Verify runs behind the auth middleware; reaching it means the token
// was accepted. It returns the current account so clients can refresh
// their cached identity.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		respondWithError(w, http.StatusForbidden, "invalid_token", "Token refers to an unknown user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user.Public(),
	})
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if err := h.users.UpdatePassword(userID, req.NewPassword); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated",
	})
}
