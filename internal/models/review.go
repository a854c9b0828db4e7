package models

type Review struct {
	BaseModel
	ProfileID  string `gorm:"not null;index" json:"profile_id"`
	ReviewerID string `gorm:"not null;index" json:"reviewer_id"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `gorm:"not null" json:"comment"`

	// Relations
	Profile  Profile `gorm:"foreignKey:ProfileID" json:"-"`
	Reviewer User    `gorm:"foreignKey:ReviewerID" json:"-"`
}
