package models

type Upload struct {
	BaseModel
	UserID       string `gorm:"not null;index" json:"user_id"`
	FileName     string `gorm:"not null" json:"file_name"`
	Path         string `gorm:"not null" json:"-"`
	URL          string `gorm:"not null" json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MimeType     string `gorm:"not null" json:"mime_type"`
	Size         int64  `gorm:"not null" json:"size"`
}
