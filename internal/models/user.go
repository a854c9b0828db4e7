package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`

	// Relations
	Profile     *Profile     `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	JobListings []JobListing `gorm:"foreignKey:UserID" json:"-"`
	Favorites   []Favorite   `gorm:"foreignKey:UserID" json:"-"`
}

// IsActive reports whether the account may log in and act.
// "deleted" is a soft tombstone, the row stays behind its unique email.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
