package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cafe-menu/internal/models"
	"cafe-menu/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type MenuHandler struct {
	menu   *services.MenuService
	logger zerolog.Logger
}

func NewMenuHandler(menu *services.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		menu:   menu,
		logger: logger,
	}
}

// GetMenuItems is public. ?available=true narrows the listing to items
// currently on offer; the admin panel reads the unfiltered list.
func (h *MenuHandler) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("available") == "true"
	items := h.menu.List(onlyAvailable)
	respondWithData(w, http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.menu.GetByID(id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	item, err := h.menu.Create(&req)
	if err != nil {
		if !models.IsValidationError(err) {
			h.logger.Error().Err(err).Msg("Failed to create menu item")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	item, err := h.menu.Update(id, &req)
	if err != nil {
		if !models.IsValidationError(err) && !errors.Is(err, models.ErrNotFound) {
			h.logger.Error().Err(err).Str("item_id", id).Msg("Failed to update menu item")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithData(w, http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.menu.Delete(id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			h.logger.Error().Err(err).Str("item_id", id).Msg("Failed to delete menu item")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Menu item deleted",
	})
}
