package services

import (
	"sort"
	"strings"
	"time"

	"cafe-menu/internal/models"
	"cafe-menu/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MenuService struct {
	store  *store.Store
	logger zerolog.Logger
}

func NewMenuService(st *store.Store, logger zerolog.Logger) *MenuService {
	return &MenuService{
		store:  st,
		logger: logger,
	}
}

// List returns menu items sorted by order_index. Ordering is stable so
// items sharing an index keep their insertion order.
func (s *MenuService) List(onlyAvailable bool) []models.MenuItem {
	items := s.store.MenuItems.Read()

	if onlyAvailable {
		available := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.IsAvailable {
				available = append(available, item)
			}
		}
		items = available
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderIndex < items[j].OrderIndex
	})
	return items
}

func (s *MenuService) GetByID(id string) (*models.MenuItem, error) {
	for _, item := range s.store.MenuItems.Read() {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MenuService) Create(req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("item name is required")
	}

	category := req.Category
	if category == "" {
		category = models.CategoryCoffee
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("unknown category: " + string(category))
	}

	if req.Price < 0 {
		return nil, models.NewValidationError("price must not be negative")
	}

	var premium *int
	if req.HasDualPricing {
		if req.PricePremium == nil {
			return nil, models.NewValidationError("price_premium is required when has_dual_pricing is set")
		}
		if *req.PricePremium < 0 {
			return nil, models.NewValidationError("price_premium must not be negative")
		}
		p := *req.PricePremium
		premium = &p
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	now := time.Now().UTC()
	item := models.MenuItem{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       category,
		Price:          req.Price,
		PricePremium:   premium,
		HasDualPricing: req.HasDualPricing,
		ImageURL:       req.ImageURL,
		OrderIndex:     req.OrderIndex,
		IsAvailable:    available,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.store.MenuItems.Update(func(items []models.MenuItem) ([]models.MenuItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist menu item")
		return nil, err
	}

	s.logger.Info().Str("item_id", item.ID).Str("name", item.Name).Msg("Menu item created")
	return &item, nil
}

func (s *MenuService) Update(id string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, models.NewValidationError("item name must not be empty")
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		return nil, models.NewValidationError("unknown category: " + string(*req.Category))
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, models.NewValidationError("price must not be negative")
	}
	if req.PricePremium != nil && *req.PricePremium < 0 {
		return nil, models.NewValidationError("price_premium must not be negative")
	}

	var updated models.MenuItem
	err := s.store.MenuItems.Update(func(items []models.MenuItem) ([]models.MenuItem, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}

			if req.Name != nil {
				items[i].Name = strings.TrimSpace(*req.Name)
			}
			if req.Category != nil {
				items[i].Category = *req.Category
			}
			if req.Price != nil {
				items[i].Price = *req.Price
			}
			if req.HasDualPricing != nil {
				items[i].HasDualPricing = *req.HasDualPricing
			}
			if req.PricePremium != nil {
				p := *req.PricePremium
				items[i].PricePremium = &p
			}
			if !items[i].HasDualPricing {
				items[i].PricePremium = nil
			}
			if items[i].HasDualPricing && items[i].PricePremium == nil {
				return nil, models.NewValidationError("price_premium is required when has_dual_pricing is set")
			}
			if req.ImageURL != nil {
				items[i].ImageURL = *req.ImageURL
			}
			if req.OrderIndex != nil {
				items[i].OrderIndex = *req.OrderIndex
			}
			if req.IsAvailable != nil {
				items[i].IsAvailable = *req.IsAvailable
			}
			items[i].UpdatedAt = time.Now().UTC()

			updated = items[i]
			return items, nil
		}
		return nil, models.ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("item_id", id).Msg("Menu item updated")
	return &updated, nil
}

func (s *MenuService) Delete(id string) error {
	err := s.store.MenuItems.Update(func(items []models.MenuItem) ([]models.MenuItem, error) {
		remaining := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.ID != id {
				remaining = append(remaining, item)
			}
		}
		if len(remaining) == len(items) {
			return nil, models.ErrNotFound
		}
		return remaining, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("item_id", id).Msg("Menu item deleted")
	return nil
}
