package services

import (
	"time"

	"cafe-menu/internal/models"
	"cafe-menu/internal/store"

	"github.com/rs/zerolog"
)

type SettingsService struct {
	store  *store.Store
	users  *UserService
	logger zerolog.Logger
}

func NewSettingsService(st *store.Store, users *UserService, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		store:  st,
		users:  users,
		logger: logger,
	}
}

// Get returns the authoritative settings record, or nil when none has
// been written yet. The file holds a single-element array; only the
// first record is read.
func (s *SettingsService) Get() *models.CafeSettings {
	records := s.store.Settings.Read()
	if len(records) == 0 {
		return nil
	}
	return &records[0]
}

// Upsert applies a partial patch over the existing settings record,
// creating it if absent. Changing admin_username is checked against the
// users collection first so a collision leaves nothing written, then
// the admin account identified by adminID is renamed to match; a failed
// settings write rolls the rename back.
func (s *SettingsService) Upsert(req *models.UpdateSettingsRequest, adminID string) (*models.CafeSettings, error) {
	now := time.Now().UTC()

	current := s.Get()
	if current == nil {
		current = &models.CafeSettings{
			ID:        models.DefaultSettingsID,
			CreatedAt: now,
		}
	}

	renaming := req.AdminUsername != nil && *req.AdminUsername != current.AdminUsername
	if renaming {
		if s.users.UsernameTaken(*req.AdminUsername, adminID) {
			return nil, models.ErrConflict
		}
	}

	next := *current
	if req.CafeName != nil {
		next.CafeName = *req.CafeName
	}
	if req.Location != nil {
		next.Location = *req.Location
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Phone != nil {
		next.Phone = *req.Phone
	}
	if req.InstagramURL != nil {
		next.InstagramURL = *req.InstagramURL
	}
	if req.LogoURL != nil {
		next.LogoURL = *req.LogoURL
	}
	if req.HeroImageURL != nil {
		next.HeroImageURL = *req.HeroImageURL
	}
	if req.AdminUsername != nil {
		next.AdminUsername = *req.AdminUsername
	}
	if req.AdminPassword != nil {
		next.AdminPassword = *req.AdminPassword
	}
	next.UpdatedAt = now

	var prevUsername string
	if renaming {
		user, err := s.users.GetByID(adminID)
		if err != nil {
			return nil, err
		}
		prevUsername = user.Username

		if err := s.users.Rename(adminID, *req.AdminUsername); err != nil {
			return nil, err
		}
	}

	if err := s.store.Settings.Write([]models.CafeSettings{next}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist cafe settings")
		// undo the rename so a failed write leaves no partial state
		if renaming {
			if rbErr := s.users.Rename(adminID, prevUsername); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("Failed to roll back admin rename")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("cafe_name", next.CafeName).Msg("Cafe settings saved")
	return &next, nil
}
