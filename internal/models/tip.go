package models

import "time"

// TipStatusPending is the only status a tip is created with.
const TipStatusPending = "pending"

// EventTip is a row of the event_tips table. Tips are candidates for manual
// promotion to events and are never read back by this service.
type EventTip struct {
	ID               int64      `json:"id,omitempty"`
	EventName        string     `json:"event_name"`
	EventDate        string     `json:"event_date"`
	DateTime         string     `json:"date_time"`
	EventLocation    string     `json:"event_location"`
	VenueName        string     `json:"venue_name"`
	EventDescription string     `json:"event_description"`
	Categories       []Category `json:"categories"`
	Category         Category   `json:"category"`
	ImageURL         *string    `json:"image_url"`
	WebsiteURL       *string    `json:"website_url"`
	SubmitterEmail   *string    `json:"submitter_email"`
	SubmitterName    *string    `json:"submitter_name"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewsletterSubscription is a row of the newsletter_subscriptions table.
type NewsletterSubscription struct {
	ID        int64     `json:"id,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
