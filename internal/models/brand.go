package models

import "time"

type Brand struct {
	ID          int64       `json:"id"`
	BrandID     string      `json:"brand_id"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Description string      `json:"description"`
	Logo        string      `json:"logo"`
	CoverImage  string      `json:"cover_image"`
	SocialMedia SocialMedia `json:"social_media"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type BrandSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Logo  string `json:"logo"`
}
