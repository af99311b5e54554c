package supabase

import (
	"context"
	"errors"
	"fmt"

	"ivarberg/internal/models"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/organizers"
	"ivarberg/internal/tips"
)

const (
	tipsTable       = "event_tips"
	newsletterTable = "newsletter_subscriptions"
	pagesTable      = "organizer_pages"
)

// TipStore inserts event tips.
type TipStore struct {
	client *Client
}

// NewTipStore wraps client.
func NewTipStore(client *Client) *TipStore {
	return &TipStore{client: client}
}

var _ tips.Store = (*TipStore)(nil)

// CreateTip inserts tip and returns its id.
func (s *TipStore) CreateTip(ctx context.Context, tip models.EventTip) (int64, error) {
	var created []struct {
		ID int64 `json:"id"`
	}
	if err := s.client.insert(ctx, tipsTable, tip, &created); err != nil {
		return 0, fmt.Errorf("insert tip: %w", err)
	}
	if len(created) == 0 {
		return 0, errors.New("insert tip: no row returned")
	}
	return created[0].ID, nil
}

// NewsletterStore inserts newsletter subscriptions.
type NewsletterStore struct {
	client *Client
}

// NewNewsletterStore wraps client.
func NewNewsletterStore(client *Client) *NewsletterStore {
	return &NewsletterStore{client: client}
}

var _ newsletter.Store = (*NewsletterStore)(nil)

// Subscribe inserts email. A duplicate maps to newsletter.ErrAlreadySubscribed.
func (s *NewsletterStore) Subscribe(ctx context.Context, email string) error {
	row := map[string]string{"email": email}
	if err := s.client.insert(ctx, newsletterTable, row, nil); err != nil {
		if IsUniqueViolation(err) {
			return newsletter.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// PageStore reads published organizer pages.
type PageStore struct {
	client *Client
}

// NewPageStore wraps client.
func NewPageStore(client *Client) *PageStore {
	return &PageStore{client: client}
}

var _ organizers.Store = (*PageStore)(nil)

// PageBySlug returns the published page with slug.
func (s *PageStore) PageBySlug(ctx context.Context, slug string) (models.OrganizerPage, error) {
	query := s.client.From(pagesTable).
		Select("*").
		Eq("slug", slug).
		Eq("is_published", "true").
		Limit(1)

	var pages []models.OrganizerPage
	if err := s.client.fetch(ctx, query, &pages); err != nil {
		return models.OrganizerPage{}, fmt.Errorf("get organizer page %s: %w", slug, err)
	}
	if len(pages) == 0 {
		return models.OrganizerPage{}, organizers.ErrPageNotFound
	}
	return pages[0], nil
}

// ListPages returns all published pages ordered by name.
func (s *PageStore) ListPages(ctx context.Context) ([]models.OrganizerPage, error) {
	query := s.client.From(pagesTable).
		Select("*").
		Eq("is_published", "true").
		Order("name", true)

	var pages []models.OrganizerPage
	if err := s.client.fetch(ctx, query, &pages); err != nil {
		return nil, fmt.Errorf("list organizer pages: %w", err)
	}
	return pages, nil
}
