package models

import "time"

type Category string

const (
	CategoryCoffee  Category = "coffee"
	CategoryShake   Category = "shake"
	CategoryColdBar Category = "cold_bar"
	CategoryTea     Category = "tea"
	CategoryCake    Category = "cake"
	CategoryFood    Category = "food"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryCoffee, CategoryShake, CategoryColdBar, CategoryTea, CategoryCake, CategoryFood:
		return true
	}
	return false
}

// MenuItem prices are stored in the smallest currency unit (rial).
type MenuItem struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       Category  `json:"category"`
	Price          int       `json:"price"`
	PricePremium   *int      `json:"price_premium"`
	HasDualPricing bool      `json:"has_dual_pricing"`
	ImageURL       string    `json:"image_url"`
	OrderIndex     int       `json:"order_index"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateMenuItemRequest struct {
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	Price          int      `json:"price"`
	PricePremium   *int     `json:"price_premium"`
	HasDualPricing bool     `json:"has_dual_pricing"`
	ImageURL       string   `json:"image_url"`
	OrderIndex     int      `json:"order_index"`
	IsAvailable    *bool    `json:"is_available"`
}

// UpdateMenuItemRequest is a partial patch: nil fields are left untouched.
type UpdateMenuItemRequest struct {
	Name           *string   `json:"name"`
	Category       *Category `json:"category"`
	Price          *int      `json:"price"`
	PricePremium   *int      `json:"price_premium"`
	HasDualPricing *bool     `json:"has_dual_pricing"`
	ImageURL       *string   `json:"image_url"`
	OrderIndex     *int      `json:"order_index"`
	IsAvailable    *bool     `json:"is_available"`
}
