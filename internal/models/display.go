package models

import "time"

// EventDisplay is the view of an event handed to clients.
type EventDisplay struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Category          Category          `json:"category"`
	Categories        []Category        `json:"categories"`
	BadgeCategory     Category          `json:"badge_category"`
	ExtraCategories   int               `json:"extra_categories"`
	Date              time.Time         `json:"date"`
	Time              string            `json:"time"`
	AllDay            bool              `json:"all_day"`
	Location          LocationDisplay   `json:"location"`
	Price             string            `json:"price"`
	Image             string            `json:"image"`
	Description       string            `json:"description"`
	DescriptionFormat DescriptionFormat `json:"description_format"`
	IsFeatured        bool              `json:"is_featured"`
	Status            Status            `json:"status"`
	OrganizerEventURL string            `json:"organizer_event_url,omitempty"`
	Organizer         *OrganizerInfo    `json:"organizer,omitempty"`
	UpdatedAt         *time.Time        `json:"updated_at,omitempty"`
}

// LocationDisplay resolves the venue name and address of an event.
type LocationDisplay struct {
	VenueName    string `json:"venue_name,omitempty"`
	Address      string `json:"address"`
	HasVenueName bool   `json:"has_venue_name"`
}

// Primary is the venue name when there is one, otherwise the address.
func (l LocationDisplay) Primary() string {
	if l.HasVenueName {
		return l.VenueName
	}
	return l.Address
}

// Secondary is the address when a venue name is shown above it.
func (l LocationDisplay) Secondary() string {
	if l.HasVenueName {
		return l.Address
	}
	return ""
}

// OrganizerInfo is the organizer subset exposed with an event.
type OrganizerInfo struct {
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
