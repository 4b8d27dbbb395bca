package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cafe-menu/internal/models"
	"cafe-menu/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// multipart framing allowance on top of the image size ceiling
const multipartOverhead = 1 << 20

type ImageHandler struct {
	images *services.ImageService
	logger zerolog.Logger
}

func NewImageHandler(images *services.ImageService, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		images: images,
		logger: logger,
	}
}

// Upload accepts one image in the multipart field "image". The request
// body is capped slightly above the image ceiling so grossly oversized
// uploads abort during parsing instead of buffering fully.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.images.MaxBytes()+multipartOverhead)

	file, _, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			respondWithServiceError(w, services.ErrImageTooLarge)
			return
		}
		respondWithError(w, http.StatusBadRequest, "no_file", "No file provided in field 'image'")
		return
	}
	defer file.Close()

	info, err := h.images.Save(file)
	if err != nil {
		if !errors.Is(err, services.ErrImageTooLarge) && !errors.Is(err, services.ErrUnsupportedImage) && !models.IsValidationError(err) {
			h.logger.Error().Err(err).Msg("Failed to store uploaded image")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"url":      info.URL,
		"filename": info.Filename,
		"size":     info.Size,
	})
}

func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.images.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list images")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Failed to list images")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"images":  images,
	})
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	if err := h.images.Delete(filename); err != nil {
		if !errors.Is(err, models.ErrNotFound) && !models.IsValidationError(err) {
			h.logger.Error().Err(err).Str("filename", filename).Msg("Failed to delete image")
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image deleted",
	})
}
