package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"ivarberg/internal/models"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/tips"
)

var (
	_ tips.Store       = (*Store)(nil)
	_ newsletter.Store = (*Store)(nil)
)

// CreateTip inserts a pending tip and returns its id.
func (s *Store) CreateTip(ctx context.Context, tip models.EventTip) (int64, error) {
	categories := make([]string, 0, len(tip.Categories))
	for _, c := range tip.Categories {
		categories = append(categories, string(c))
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO event_tips (event_name, event_date, date_time, event_location, venue_name,
			event_description, categories, category, image_url, website_url,
			submitter_email, submitter_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, tip.EventName, tip.EventDate, tip.DateTime, tip.EventLocation, tip.VenueName,
		tip.EventDescription, pq.Array(categories), string(tip.Category), tip.ImageURL, tip.WebsiteURL,
		tip.SubmitterEmail, tip.SubmitterName, tip.Status, tip.CreatedAt, tip.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert tip: %w", err)
	}

	return id, nil
}

// Subscribe adds email to the newsletter list.
func (s *Store) Subscribe(ctx context.Context, email string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
	`, email); err != nil {
		if isUniqueViolation(err) {
			return newsletter.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}
