package models

import "time"

// DefaultSettingsID is the id of the single authoritative settings record.
const DefaultSettingsID = "default"

// CafeSettings is a singleton-like record read by the public menu page.
// AdminPassword is a legacy display field kept for older clients; the
// users collection is the source of truth for credentials.
type CafeSettings struct {
	ID            string    `json:"id"`
	CafeName      string    `json:"cafe_name"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Phone         string    `json:"phone"`
	InstagramURL  string    `json:"instagram_url"`
	LogoURL       string    `json:"logo_url"`
	HeroImageURL  string    `json:"hero_image_url"`
	AdminUsername string    `json:"admin_username"`
	AdminPassword string    `json:"admin_password"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	CafeName      *string `json:"cafe_name"`
	Location      *string `json:"location"`
	Description   *string `json:"description"`
	Phone         *string `json:"phone"`
	InstagramURL  *string `json:"instagram_url"`
	LogoURL       *string `json:"logo_url"`
	HeroImageURL  *string `json:"hero_image_url"`
	AdminUsername *string `json:"admin_username"`
	AdminPassword *string `json:"admin_password"`
}
