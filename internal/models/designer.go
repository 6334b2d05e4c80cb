package models

import "time"

type SocialMedia struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
}

type Designer struct {
	ID             int64       `json:"id"`
	DesignerID     string      `json:"designer_id"`
	Name           string      `json:"name"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Bio            string      `json:"bio"`
	ProfilePicture string      `json:"profile_picture"`
	CoverImage     string      `json:"cover_image"`
	Portfolio      []string    `json:"portfolio"`
	SocialMedia    SocialMedia `json:"social_media"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type DesignerSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}
