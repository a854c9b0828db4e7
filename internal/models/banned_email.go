package models

type BannedEmail struct {
	BaseModel
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Reason   string  `json:"reason"`
	BannedBy *string `gorm:"index" json:"banned_by,omitempty"`
}
