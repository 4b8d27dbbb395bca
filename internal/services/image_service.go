package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cafe-menu/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// extensions by sniffed content type; user-supplied filenames are never
// used on disk.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ImageInfo struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ImageService struct {
	dir      string
	maxBytes int64
	logger   zerolog.Logger
}

func NewImageService(dir string, maxBytes int64, logger zerolog.Logger) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageService{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *ImageService) Dir() string {
	return s.dir
}

// Save stores one uploaded image under a generated filename and returns
// its served path. The content type is sniffed from the payload, not
// taken from the request, and nothing is written for an oversized or
// unsupported upload.
func (s *ImageService) Save(r io.Reader) (*ImageInfo, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("no file provided")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	s.logger.Info().Str("filename", filename).Int("size", len(data)).Msg("Image uploaded")
	return &ImageInfo{
		Filename:   filename,
		URL:        "/uploads/" + filename,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}, nil
}

func (s *ImageService) List() ([]ImageInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	images := make([]ImageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, ImageInfo{
			Filename:   entry.Name(),
			URL:        "/uploads/" + entry.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].UploadedAt.After(images[j].UploadedAt)
	})
	return images, nil
}

func (s *ImageService) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return models.NewValidationError("invalid filename")
	}

	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	s.logger.Info().Str("filename", filename).Msg("Image deleted")
	return nil
}
