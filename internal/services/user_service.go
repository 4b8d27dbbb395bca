package services

import (
	"fmt"
	"time"

	"cafe-menu/internal/models"
	"cafe-menu/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword is the bootstrap credential for a fresh data
// directory. A real deployment must rotate it after first login.
const DefaultAdminPassword = "rest2024"

const minPasswordLength = 6

type UserService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewUserService(st *store.Store, logger zerolog.Logger) *UserService {
	return &UserService{
		store:  st,
		logger: logger,
	}
}

func (s *UserService) FindByUsername(username string) (*models.User, error) {
	for _, user := range s.store.Users.Read() {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	for _, user := range s.store.Users.Read() {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, models.ErrNotFound
}

// Authenticate verifies a username/password pair. Failures are uniform:
// callers cannot tell an unknown username from a wrong password.
func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, models.ErrInvalidCredentials
	}

	user, err := s.FindByUsername(req.Username)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("username", req.Username).Msg("Failed authentication attempt")
		return nil, models.ErrInvalidCredentials
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User authenticated")
	return user, nil
}

func (s *UserService) Create(username, password, role string) (*models.User, error) {
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	if len(password) < minPasswordLength {
		return nil, models.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.store.Users.Update(func(users []models.User) ([]models.User, error) {
		for _, existing := range users {
			if existing.Username == username {
				return nil, models.ErrConflict
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("User created")
	return &user, nil
}

// UpdatePassword rehashes and persists a new password for the user.
func (s *UserService) UpdatePassword(userID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return models.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.store.Users.Update(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].PasswordHash = string(hash)
				users[i].UpdatedAt = time.Now().UTC()
				return users, nil
			}
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("Password updated")
	return nil
}

// Rename changes a user's username, failing with ErrConflict when the
// name is already taken by a different user.
func (s *UserService) Rename(userID, newUsername string) error {
	if newUsername == "" {
		return models.NewValidationError("username is required")
	}

	err := s.store.Users.Update(func(users []models.User) ([]models.User, error) {
		for _, existing := range users {
			if existing.Username == newUsername && existing.ID != userID {
				return nil, models.ErrConflict
			}
		}
		for i := range users {
			if users[i].ID == userID {
				users[i].Username = newUsername
				users[i].UpdatedAt = time.Now().UTC()
				return users, nil
			}
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("username", newUsername).Msg("User renamed")
	return nil
}

// UsernameTaken reports whether a username belongs to a user other than
// excludeID.
func (s *UserService) UsernameTaken(username, excludeID string) bool {
	for _, user := range s.store.Users.Read() {
		if user.Username == username && user.ID != excludeID {
			return true
		}
	}
	return false
}

// Bootstrap creates the default admin account when none exists.
func (s *UserService) Bootstrap() error {
	if _, err := s.FindByUsername("admin"); err == nil {
		return nil
	}

	if _, err := s.Create("admin", DefaultAdminPassword, models.RoleAdmin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	s.logger.Warn().Msg("Created default admin user with the default password; rotate it")
	return nil
}
