// Package organizers serves organizer landing pages and their events.
package organizers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"ivarberg/internal/events"
	"ivarberg/internal/logging"
	"ivarberg/internal/models"
)

// ErrPageNotFound is returned when no published page has the slug.
var ErrPageNotFound = errors.New("organizer page not found")

// Store reads organizer pages. Only published pages are returned.
type Store interface {
	PageBySlug(ctx context.Context, slug string) (models.OrganizerPage, error)
	ListPages(ctx context.Context) ([]models.OrganizerPage, error)
}

// EventLister loads the upcoming events of an organizer.
type EventLister interface {
	ByOrganizer(ctx context.Context, organizerID int64) []models.EventDisplay
}

// PageView is an organizer page together with its upcoming events.
type PageView struct {
	Page   models.OrganizerPage  `json:"page"`
	Events []models.EventDisplay `json:"events"`
}

// Service reads organizer pages.
type Service struct {
	store  Store
	events EventLister
}

// NewService constructs a Service.
func NewService(store Store, ev EventLister) *Service {
	return &Service{store: store, events: ev}
}

var _ EventLister = (*events.Service)(nil)

// NormalizeSlug lowercases and transliterates a requested slug.
func NormalizeSlug(s string) string {
	return slug.Make(s)
}

// Page returns the published page for slug with its upcoming events. The
// events are only loaded when the page is linked to an organizer.
func (s *Service) Page(ctx context.Context, pageSlug string) (PageView, error) {
	if err := ctx.Err(); err != nil {
		return PageView{}, err
	}

	normalized := NormalizeSlug(pageSlug)
	if normalized == "" {
		return PageView{}, ErrPageNotFound
	}

	page, err := s.store.PageBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return PageView{}, ErrPageNotFound
		}
		return PageView{}, fmt.Errorf("load organizer page %q: %w", normalized, err)
	}
	if !page.IsPublished {
		return PageView{}, ErrPageNotFound
	}

	view := PageView{Page: page, Events: []models.EventDisplay{}}
	if page.OrganizerID != nil {
		view.Events = s.events.ByOrganizer(ctx, *page.OrganizerID)
	} else {
		logging.WithContext(ctx).Debug().Str("slug", normalized).Msg("organizer page has no organizer, skipping events")
	}
	return view, nil
}

// List returns all published pages. Failures yield no pages.
func (s *Service) List(ctx context.Context) []models.OrganizerPage {
	pages, err := s.store.ListPages(ctx)
	if err != nil {
		logging.WithContext(ctx).Error().Err(err).Msg("list organizer pages")
		return []models.OrganizerPage{}
	}

	published := make([]models.OrganizerPage, 0, len(pages))
	for _, p := range pages {
		if p.IsPublished {
			published = append(published, p)
		}
	}
	return published
}
