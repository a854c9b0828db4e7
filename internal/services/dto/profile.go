package dto

import "time"

type CreateProfileRequest struct {
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	Description    string   `json:"description"`
	Services       []string `json:"services" validate:"required,min=1"`
	CustomServices string   `json:"custom_services"`
	Regions        []string `json:"regions" validate:"required,min=1"`
	Availability   []string `json:"availability" validate:"required,min=1"`
	Phone          string   `json:"phone"`
	ContactEmail   string   `json:"contact_email" validate:"omitempty,email"`
	SocialMedia    string   `json:"social_media"`
	Available      *bool    `json:"available"`
}

type UpdateProfileRequest = CreateProfileRequest

type ProfileResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Description    string    `json:"description"`
	Services       []string  `json:"services"`
	CustomServices string    `json:"custom_services,omitempty"`
	Regions        []string  `json:"regions"`
	Availability   []string  `json:"availability"`
	Phone          string    `json:"phone,omitempty"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	SocialMedia    string    `json:"social_media,omitempty"`
	Available      bool      `json:"available"`
	ImageURL       string    `json:"image_url,omitempty"`
	Rating         float64   `json:"rating"`
	ReviewCount    int64     `json:"review_count"`
	CreatedAt      time.Time `json:"created_at"`

	Reviews []*ReviewResponse `json:"reviews,omitempty"`
}

// SearchProfilesRequest binds the /profiles query parameters.
// Service and region accept the sentinel "all" meaning no filter.
type SearchProfilesRequest struct {
	Service  string `form:"service"`
	Region   string `form:"region"`
	Name     string `form:"name"`
	Sort     string `form:"sort" validate:"is-sort-key"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type SearchProfilesResponse struct {
	Results  []*ProfileResponse `json:"results"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
