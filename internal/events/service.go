// Package events reads published events, maps them for display and
// implements the listing, similarity and export features built on them.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/logging"
	"ivarberg/internal/metrics"
	"ivarberg/internal/models"
)

// ErrEventNotFound is returned when no published event has the given id.
var ErrEventNotFound = errors.New("event not found")

// FeaturedLimit caps the featured carousel.
const FeaturedLimit = 5

// Source runs event queries against a backing store.
type Source interface {
	ListEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error)
	GetEvent(ctx context.Context, eventID string) (models.Event, error)
}

// Service exposes the read operations used by the site. List operations
// fail soft: a failed query is logged and counted and yields no events.
type Service struct {
	source     Source
	sourceName string
	metrics    *metrics.Metrics
	now        func() time.Time
}

// New constructs a Service over source. sourceName labels metrics.
func New(source Source, sourceName string, m *metrics.Metrics) *Service {
	return &Service{
		source:     source,
		sourceName: sourceName,
		metrics:    m,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to compute "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the current time of the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) upcoming() models.EventQuery {
	today := calendar.Today(s.now())
	return models.EventQuery{
		Status: models.StatusPublished,
		From:   &today,
		Order:  models.OrderFeaturedFirst,
	}
}

func (s *Service) list(ctx context.Context, op string, q models.EventQuery) []models.EventDisplay {
	if err := ctx.Err(); err != nil {
		return []models.EventDisplay{}
	}

	rows, err := s.source.ListEvents(ctx, q)
	s.metrics.UpstreamQuery(s.sourceName, op, err)
	if err != nil {
		logging.WithContext(ctx).Error().
			Err(err).
			Str("op", op).
			Str("source", s.sourceName).
			Msg("event query failed")
		return []models.EventDisplay{}
	}

	return ToDisplayAll(rows)
}

// Published returns every published event from today onwards, featured first.
func (s *Service) Published(ctx context.Context) []models.EventDisplay {
	return s.list(ctx, "published", s.upcoming())
}

// Featured returns up to five featured events from today onwards in start order.
func (s *Service) Featured(ctx context.Context) []models.EventDisplay {
	q := s.upcoming()
	q.FeaturedOnly = true
	q.Order = models.OrderChronological
	q.Limit = FeaturedLimit
	return s.list(ctx, "featured", q)
}

// ByCategory returns upcoming events in category c under either category field.
func (s *Service) ByCategory(ctx context.Context, c models.Category) []models.EventDisplay {
	q := s.upcoming()
	q.Category = c
	return s.list(ctx, "category", q)
}

// ByDateRange returns published events within r. The range is not clamped to today.
func (s *Service) ByDateRange(ctx context.Context, r calendar.Range) []models.EventDisplay {
	start, end := r.Start, r.End
	return s.list(ctx, "date_range", models.EventQuery{
		Status: models.StatusPublished,
		From:   &start,
		To:     &end,
		Order:  models.OrderFeaturedFirst,
	})
}

// Search runs a full text search over event names.
func (s *Service) Search(ctx context.Context, term string) []models.EventDisplay {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.EventDisplay{}
	}
	q := s.upcoming()
	q.Search = term
	q.Order = models.OrderChronological
	return s.list(ctx, "search", q)
}

// ByOrganizer returns upcoming events linked to an organizer.
func (s *Service) ByOrganizer(ctx context.Context, organizerID int64) []models.EventDisplay {
	q := s.upcoming()
	q.OrganizerID = &organizerID
	return s.list(ctx, "organizer", q)
}

// ByOrganizerName returns upcoming events whose organizer name contains name.
func (s *Service) ByOrganizerName(ctx context.Context, name string) []models.EventDisplay {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.EventDisplay{}
	}
	q := s.upcoming()
	q.OrganizerName = name
	return s.list(ctx, "organizer_name", q)
}

// Get returns a single published event by its public id.
func (s *Service) Get(ctx context.Context, eventID string) (models.EventDisplay, error) {
	if err := ctx.Err(); err != nil {
		return models.EventDisplay{}, err
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return models.EventDisplay{}, ErrEventNotFound
	}

	row, err := s.source.GetEvent(ctx, eventID)
	s.metrics.UpstreamQuery(s.sourceName, "get", err)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return models.EventDisplay{}, ErrEventNotFound
		}
		return models.EventDisplay{}, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if row.Status != models.StatusPublished {
		return models.EventDisplay{}, ErrEventNotFound
	}

	return ToDisplay(row), nil
}
