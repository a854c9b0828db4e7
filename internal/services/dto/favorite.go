package dto

import "time"

type FavoriteResponse struct {
	ProfileID string           `json:"profile_id"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
