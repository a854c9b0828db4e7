package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Profile struct {
	BaseModel
	UserID         string `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `gorm:"not null" json:"last_name"`
	Description    string `json:"description"`
	Services       datatypes.JSON `gorm:"type:jsonb" json:"-"` // ["Elektriker", "Installateur"]
	CustomServices string         `json:"custom_services"`
	Regions        datatypes.JSON `gorm:"type:jsonb" json:"-"` // ["Wien", "Niederösterreich"]
	Availability   datatypes.JSON `gorm:"type:jsonb" json:"-"` // ["Wochentags abends", "Wochenende"]
	Phone          string         `json:"phone"`
	ContactEmail   string         `json:"contact_email"`
	SocialMedia    string         `json:"social_media"`
	Available      bool           `gorm:"default:true" json:"available"`
	ImageURL       string         `json:"image_url"`

	// Relations
	Reviews []Review `gorm:"foreignKey:ProfileID" json:"reviews,omitempty"`
}

// decodeList unmarshals a stored JSONB list. Malformed or empty payloads
// degrade to an empty list instead of failing the request.
func decodeList(data datatypes.JSON) []string {
	var out []string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &out)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func encodeList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

func (p *Profile) GetServices() []string     { return decodeList(p.Services) }
func (p *Profile) GetRegions() []string      { return decodeList(p.Regions) }
func (p *Profile) GetAvailability() []string { return decodeList(p.Availability) }

func (p *Profile) SetServices(services []string)   { p.Services = encodeList(services) }
func (p *Profile) SetRegions(regions []string)     { p.Regions = encodeList(regions) }
func (p *Profile) SetAvailability(slots []string)  { p.Availability = encodeList(slots) }

// FullName joins first and last name the way the search endpoint matches it.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// HasContactMethod reports whether at least one way to reach the provider
// is present. Required at profile create/update time.
func (p *Profile) HasContactMethod() bool {
	return p.Phone != "" || p.ContactEmail != "" || p.SocialMedia != ""
}
