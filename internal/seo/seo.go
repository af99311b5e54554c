// Package seo builds schema.org JSON-LD documents for the public pages.
package seo

import (
	"regexp"
	"strings"
	"time"

	"ivarberg/internal/events"
	"ivarberg/internal/models"
	"ivarberg/internal/site"
)

const schemaContext = "https://schema.org"

// Thing is a JSON-LD node.
type Thing map[string]any

func node(kind string) Thing {
	return Thing{"@context": schemaContext, "@type": kind}
}

// EventSchema describes a single event.
func EventSchema(e models.EventDisplay, cfg site.Config) Thing {
	start := e.Date
	status := "https://schema.org/EventScheduled"
	if e.Status == models.StatusCancelled {
		status = "https://schema.org/EventCancelled"
	}

	doc := node("Event")
	doc["name"] = e.Title
	doc["startDate"] = start.Format(time.RFC3339)
	doc["endDate"] = start.Add(events.DefaultDuration).Format(time.RFC3339)
	doc["eventStatus"] = status
	doc["eventAttendanceMode"] = "https://schema.org/OfflineEventAttendanceMode"
	doc["url"] = cfg.URL("/event/" + e.ID)
	doc["image"] = []string{absolute(cfg, e.Image)}
	if text := events.Excerpt(events.PlainText(e.Description, e.DescriptionFormat)); text != "" {
		doc["description"] = text
	}

	doc["location"] = Thing{
		"@type": "Place",
		"name":  e.Location.Primary(),
		"address": Thing{
			"@type":           "PostalAddress",
			"streetAddress":   e.Location.Address,
			"addressLocality": cfg.Business.Locality,
			"addressCountry":  cfg.Business.Country,
		},
	}

	offer := Thing{
		"@type":         "Offer",
		"priceCurrency": "SEK",
		"availability":  "https://schema.org/InStock",
		"url":           cfg.URL("/event/" + e.ID),
	}
	if e.OrganizerEventURL != "" {
		offer["url"] = e.OrganizerEventURL
	}
	if price, ok := Price(e.Price); ok {
		offer["price"] = price
	}
	doc["offers"] = offer

	if e.Organizer != nil && e.Organizer.Name != "" {
		org := Thing{"@type": "Organization", "name": e.Organizer.Name}
		if e.Organizer.Website != "" {
			org["url"] = e.Organizer.Website
		}
		doc["organizer"] = org
	}
	return doc
}

var pricePattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Price extracts a numeric price from a display price such as "250 kr".
// Free events are priced 0.
func Price(display string) (string, bool) {
	if strings.EqualFold(strings.TrimSpace(display), events.DefaultPrice) {
		return "0", true
	}
	m := pricePattern.FindString(display)
	if m == "" {
		return "", false
	}
	return strings.ReplaceAll(m, ",", "."), true
}

func absolute(cfg site.Config, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return cfg.URL(ref)
}

// LocalBusinessSchema describes the site itself as a local business.
func LocalBusinessSchema(cfg site.Config) Thing {
	b := cfg.Business
	doc := node("LocalBusiness")
	doc["name"] = b.Name
	doc["description"] = b.Description
	doc["url"] = cfg.BaseURL
	doc["logo"] = b.Logo
	doc["image"] = b.Image
	doc["address"] = Thing{
		"@type":           "PostalAddress",
		"addressLocality": b.Locality,
		"addressCountry":  b.Country,
	}
	doc["email"] = b.Email
	doc["areaServed"] = Thing{
		"@type": "City",
		"name":  b.Locality,
		"containedInPlace": Thing{
			"@type": "AdministrativeArea",
			"name":  b.Region,
		},
	}
	doc["geo"] = Thing{
		"@type":     "GeoCoordinates",
		"latitude":  b.Latitude,
		"longitude": b.Longitude,
	}
	doc["priceRange"] = b.PriceRange
	if len(b.SameAs) > 0 {
		doc["sameAs"] = b.SameAs
	}
	return doc
}

// FAQSchema lists the configured questions and answers.
func FAQSchema(cfg site.Config) Thing {
	entities := make([]Thing, 0, len(cfg.FAQ))
	for _, f := range cfg.FAQ {
		entities = append(entities, Thing{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": Thing{
				"@type": "Answer",
				"text":  f.Answer,
			},
		})
	}
	doc := node("FAQPage")
	doc["mainEntity"] = entities
	return doc
}

// Crumb is one step of a breadcrumb trail below the home page.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// BreadcrumbSchema lists the trail, always starting at the home page.
func BreadcrumbSchema(cfg site.Config, crumbs []Crumb) Thing {
	items := []Thing{{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Hem",
		"item":     cfg.BaseURL,
	}}
	for i, c := range crumbs {
		items = append(items, Thing{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     c.Label,
			"item":     cfg.BaseURL + c.Href,
		})
	}
	doc := node("BreadcrumbList")
	doc["itemListElement"] = items
	return doc
}

// ItemListSchema lists events in display order.
func ItemListSchema(cfg site.Config, list []models.EventDisplay) Thing {
	items := make([]Thing, 0, len(list))
	for i, e := range list {
		items = append(items, Thing{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      cfg.URL("/event/" + e.ID),
			"name":     e.Title,
		})
	}
	doc := node("ItemList")
	doc["numberOfItems"] = len(items)
	doc["itemListElement"] = items
	return doc
}
