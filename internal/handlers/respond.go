package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cafe-menu/internal/models"
	"cafe-menu/internal/services"
)

// envelope is the canonical success shape for resource endpoints.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, code int, data any) {
	respondWithJSON(w, code, envelope{Success: true, Data: data})
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, map[string]any{
		"success": false,
		"error":   errorCode,
		"message": message,
	})
}

// respondWithServiceError maps the service error taxonomy onto HTTP
// statuses. Unexpected errors surface as a bare 500; the caller is
// responsible for logging them.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, models.ErrConflict):
		respondWithError(w, http.StatusBadRequest, "conflict", "Username is already taken")
	case errors.Is(err, models.ErrWeakPassword):
		respondWithError(w, http.StatusBadRequest, "weak_password", models.ErrWeakPassword.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "authentication_failed", "Invalid username or password")
	case errors.Is(err, services.ErrImageTooLarge):
		respondWithError(w, http.StatusRequestEntityTooLarge, "file_too_large", "Uploaded file exceeds the size limit")
	case errors.Is(err, services.ErrUnsupportedImage):
		respondWithError(w, http.StatusBadRequest, "unsupported_type", "Only JPEG, PNG, GIF and WebP images are accepted")
	case models.IsValidationError(err):
		respondWithError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
