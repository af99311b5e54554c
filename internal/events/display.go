package events

import (
	"strings"

	"ivarberg/internal/calendar"
	"ivarberg/internal/categories"
	"ivarberg/internal/models"
)

// Display defaults for missing optional fields.
const (
	DefaultPrice = "Gratis"
	DefaultImage = "/placeholder.svg"
)

// ToDisplay maps an event row to its display form.
func ToDisplay(e models.Event) models.EventDisplay {
	e = categories.Backfill(e)
	start := calendar.Local(e.DateTime)

	d := models.EventDisplay{
		ID:                e.EventID,
		Title:             e.Name,
		Category:          categories.Main(e),
		Categories:        e.Categories,
		Date:              start,
		Time:              calendar.TimeLabel(start),
		AllDay:            calendar.IsAllDay(start),
		Location:          FormatLocation(e.VenueName, e.Location),
		Price:             orDefault(e.Price, DefaultPrice),
		Image:             orDefault(e.ImageURL, DefaultImage),
		Description:       orDefault(e.Description, ""),
		DescriptionFormat: e.DescriptionFormat,
		IsFeatured:        e.Featured,
		Status:            e.Status,
		OrganizerEventURL: orDefault(e.OrganizerEventURL, ""),
		UpdatedAt:         e.UpdatedAt,
	}
	if d.Categories == nil {
		d.Categories = []models.Category{}
	}
	d.BadgeCategory, d.ExtraCategories = categories.Badge(e, nil)
	if d.DescriptionFormat == "" {
		d.DescriptionFormat = models.FormatMarkdown
	}

	if e.Organizer != nil {
		d.Organizer = &models.OrganizerInfo{
			Name:    e.Organizer.Name,
			Website: orDefault(e.Organizer.Website, ""),
			Email:   orDefault(e.Organizer.Email, ""),
			Phone:   orDefault(e.Organizer.Phone, ""),
		}
	}

	return d
}

// ToDisplayAll maps rows in order. The result is never nil.
func ToDisplayAll(rows []models.Event) []models.EventDisplay {
	out := make([]models.EventDisplay, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDisplay(row))
	}
	return out
}

// FormatLocation splits an optional venue name from the address.
func FormatLocation(venueName *string, address string) models.LocationDisplay {
	loc := models.LocationDisplay{Address: address}
	if venueName != nil && strings.TrimSpace(*venueName) != "" {
		loc.VenueName = *venueName
		loc.HasVenueName = true
	}
	return loc
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
