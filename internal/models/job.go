package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobListing struct {
	BaseModel
	UserID      string     `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null" json:"description"`
	Location    string     `gorm:"not null" json:"location"`
	Date        *time.Time `json:"date,omitempty"`
	Category    string     `gorm:"not null" json:"category"`
	ContactInfo string     `json:"contact_info"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"-"`
	Status      JobStatus      `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (j *JobListing) GetImages() []string       { return decodeList(j.Images) }
func (j *JobListing) SetImages(images []string) { j.Images = encodeList(images) }
