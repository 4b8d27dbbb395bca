package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cafe-menu/internal/middleware"
	"cafe-menu/internal/models"
	"cafe-menu/internal/services"

	"github.com/rs/zerolog"
)

type SettingsHandler struct {
	settings *services.SettingsService
	logger   zerolog.Logger
}

func NewSettingsHandler(settings *services.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// GetSettings is public; data is null until settings are first written.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.settings.Get())
}

func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "User not authenticated")
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	settings, err := h.settings.Upsert(&req, adminID)
	if err != nil {
		if !errors.Is(err, models.ErrConflict) && !models.IsValidationError(err) {
			h.logger.Error().Err(err).Msg("Failed to update cafe settings")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, settings)
}
