package models

import "time"

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type User struct {
	ID              int64     `json:"id"`
	PublicID        string    `json:"user_id"`
	Name            string    `json:"name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	UserType        string    `json:"user_type"`
	ProfilePicture  string    `json:"profile_picture"`
	PortfolioImages []string  `json:"portfolio_images"`
	Address         Address   `json:"address"`
	Phone           string    `json:"phone"`
	Website         string    `json:"website"`
	Status          string    `json:"status"`
	UnreadMessages  int       `json:"unread_messages"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserSummary is the read-side projection used when a user is referenced
// from another entity (custom orders, conversations).
type UserSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture"`
}
