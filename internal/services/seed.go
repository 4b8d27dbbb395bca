package services

import (
	"fmt"
	"time"

	"cafe-menu/internal/models"
	"cafe-menu/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func intPtr(v int) *int { return &v }

// SeedDefaults populates an empty data directory with the stock menu,
// default cafe settings and the bootstrap admin account. Collections
// that already hold data are left alone.
func SeedDefaults(st *store.Store, users *UserService, logger zerolog.Logger) error {
	if items := st.MenuItems.Read(); len(items) == 0 {
		logger.Info().Msg("Seeding default menu items")
		if err := st.MenuItems.Write(defaultMenuItems()); err != nil {
			return fmt.Errorf("seed menu items: %w", err)
		}
	}

	if settings := st.Settings.Read(); len(settings) == 0 {
		logger.Info().Msg("Seeding default cafe settings")
		if err := st.Settings.Write([]models.CafeSettings{defaultCafeSettings()}); err != nil {
			return fmt.Errorf("seed cafe settings: %w", err)
		}
	}

	if err := users.Bootstrap(); err != nil {
		return err
	}

	return nil
}

func defaultCafeSettings() models.CafeSettings {
	now := time.Now().UTC()
	return models.CafeSettings{
		ID:            models.DefaultSettingsID,
		CafeName:      "کافه رست",
		Location:      "اردبیل",
		Description:   "بهترین قهوه و شیک در اردبیل با کیفیت عالی و طعم بی‌نظیر",
		Phone:         "09123456789",
		InstagramURL:  "https://instagram.com/caferest",
		HeroImageURL:  "https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=800",
		LogoURL:       "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=200",
		AdminUsername: "admin",
		AdminPassword: DefaultAdminPassword,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func defaultMenuItems() []models.MenuItem {
	now := time.Now().UTC()

	seed := []models.MenuItem{
		{
			Name:           "اسپرسو (قیمت عادی: لاین 50-50)",
			Category:       models.CategoryCoffee,
			Price:          45000,
			PricePremium:   intPtr(55000),
			HasDualPricing: true,
			ImageURL:       "https://images.unsplash.com/photo-1514432320407-a09c9e4aef1d?w=400",
			OrderIndex:     1,
		},
		{
			Name:           "آیس آمریکانو",
			Category:       models.CategoryCoffee,
			Price:          35000,
			PricePremium:   intPtr(45000),
			HasDualPricing: true,
			ImageURL:       "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400",
			OrderIndex:     2,
		},
		{
			Name:           "کاپوچینو",
			Category:       models.CategoryCoffee,
			Price:          40000,
			PricePremium:   intPtr(50000),
			HasDualPricing: true,
			ImageURL:       "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400",
			OrderIndex:     5,
		},
		{
			Name:           "لته",
			Category:       models.CategoryCoffee,
			Price:          42000,
			PricePremium:   intPtr(52000),
			HasDualPricing: true,
			ImageURL:       "https://images.unsplash.com/photo-1578314675249-a6910f80cc4e?w=400",
			OrderIndex:     6,
		},
		{
			Name:       "نوتلا",
			Category:   models.CategoryShake,
			Price:      65000,
			ImageURL:   "https://images.unsplash.com/photo-1572490122747-3968b75cc699?w=400",
			OrderIndex: 12,
		},
		{
			Name:       "لوتوس",
			Category:   models.CategoryShake,
			Price:      70000,
			ImageURL:   "https://images.unsplash.com/photo-1572490122747-3968b75cc699?w=400",
			OrderIndex: 14,
		},
		{
			Name:       "ردگاردن",
			Category:   models.CategoryColdBar,
			Price:      45000,
			ImageURL:   "https://images.unsplash.com/photo-1578314675249-a6910f80cc4e?w=400",
			OrderIndex: 20,
		},
		{
			Name:       "لیموناد نعناع",
			Category:   models.CategoryColdBar,
			Price:      40000,
			ImageURL:   "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
			OrderIndex: 21,
		},
		{
			Name:       "دمنوش",
			Category:   models.CategoryTea,
			Price:      35000,
			ImageURL:   "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
			OrderIndex: 32,
		},
		{
			Name:       "چیز کیک",
			Category:   models.CategoryCake,
			Price:      85000,
			ImageURL:   "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400",
			OrderIndex: 36,
		},
		{
			Name:       "پاستا",
			Category:   models.CategoryFood,
			Price:      120000,
			ImageURL:   "https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?w=400",
			OrderIndex: 41,
		},
		{
			Name:       "سیب زمینی با سس مخصوص",
			Category:   models.CategoryFood,
			Price:      65000,
			ImageURL:   "https://images.unsplash.com/photo-1528735602786-469f3817357d?w=400",
			OrderIndex: 42,
		},
	}

	for i := range seed {
		seed[i].ID = uuid.NewString()
		seed[i].IsAvailable = true
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	return seed
}
