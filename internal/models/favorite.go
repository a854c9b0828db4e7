package models

type Favorite struct {
	BaseModel
	UserID    string `gorm:"not null;uniqueIndex:idx_favorite_user_profile" json:"user_id"`
	ProfileID string `gorm:"not null;uniqueIndex:idx_favorite_user_profile" json:"profile_id"`

	// Relations
	Profile Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
}
