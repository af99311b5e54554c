package supabase

import (
	"context"
	"errors"
	"fmt"

	"ivarberg/internal/calendar"
	"ivarberg/internal/events"
	"ivarberg/internal/logging"
	"ivarberg/internal/models"
)

const (
	eventsTable      = "events"
	eventColumns     = "*,organizer:organizers(*)"
	eventColumnsJoin = "*,organizer:organizers!inner(*)"
	searchConfig     = "swedish"
)

// eventRow mirrors an events row as rendered by PostgREST. Timestamps are
// decoded by hand because the column has no offset.
type eventRow struct {
	ID                int64              `json:"id"`
	EventID           string             `json:"event_id"`
	Name              string             `json:"name"`
	Category          *string            `json:"category"`
	Categories        []models.Category  `json:"categories"`
	CategoryScores    map[string]float64 `json:"category_scores"`
	DateTime          string             `json:"date_time"`
	Location          string             `json:"location"`
	VenueName         *string            `json:"venue_name"`
	Price             *string            `json:"price"`
	ImageURL          *string            `json:"image_url"`
	Description       *string            `json:"description"`
	DescriptionFormat *string            `json:"description_format"`
	OrganizerEventURL *string            `json:"organizer_event_url"`
	Featured          bool               `json:"featured"`
	Status            models.Status      `json:"status"`
	MaxParticipants   *int               `json:"max_participants"`
	Tags              []string           `json:"tags"`
	OrganizerID       *int64             `json:"organizer_id"`
	CreatedAt         *string            `json:"created_at"`
	UpdatedAt         *string            `json:"updated_at"`
	Organizer         *models.Organizer  `json:"organizer"`
}

func (r eventRow) toModel() (models.Event, error) {
	start, err := calendar.ParseTimestamp(r.DateTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("event %s: %w", r.EventID, err)
	}

	e := models.Event{
		ID:                r.ID,
		EventID:           r.EventID,
		Name:              r.Name,
		Categories:        r.Categories,
		CategoryScores:    r.CategoryScores,
		DateTime:          start,
		Location:          r.Location,
		VenueName:         r.VenueName,
		Price:             r.Price,
		ImageURL:          r.ImageURL,
		Description:       r.Description,
		OrganizerEventURL: r.OrganizerEventURL,
		Featured:          r.Featured,
		Status:            r.Status,
		MaxParticipants:   r.MaxParticipants,
		Tags:              r.Tags,
		OrganizerID:       r.OrganizerID,
		Organizer:         r.Organizer,
	}
	if r.Category != nil {
		e.Category = models.Category(*r.Category)
	}
	if r.DescriptionFormat != nil {
		e.DescriptionFormat = models.DescriptionFormat(*r.DescriptionFormat)
	}
	if r.CreatedAt != nil {
		if t, err := calendar.ParseTimestamp(*r.CreatedAt); err == nil {
			e.CreatedAt = t
		}
	}
	if r.UpdatedAt != nil {
		if t, err := calendar.ParseTimestamp(*r.UpdatedAt); err == nil {
			e.UpdatedAt = &t
		}
	}
	return e, nil
}

// EventSource implements events.Source over the REST API.
type EventSource struct {
	client *Client
}

// NewEventSource wraps client.
func NewEventSource(client *Client) *EventSource {
	return &EventSource{client: client}
}

var _ events.Source = (*EventSource)(nil)

// BuildEventQuery translates q into a PostgREST query.
func BuildEventQuery(c *Client, q models.EventQuery) *Query {
	columns := eventColumns
	if q.OrganizerName != "" {
		columns = eventColumnsJoin
	}
	query := c.From(eventsTable).Select(columns)

	if q.Status != "" {
		query.Eq("status", string(q.Status))
	}
	if q.FeaturedOnly {
		query.Eq("featured", "true")
	}
	if q.Category != "" {
		query.Or(
			"category.eq."+Quote(string(q.Category)),
			"categories.cs.{"+Quote(string(q.Category))+"}",
		)
	}
	if q.OrganizerID != nil {
		query.Eq("organizer_id", fmt.Sprint(*q.OrganizerID))
	}
	if q.OrganizerName != "" {
		query.ILike("organizer.name", "*"+q.OrganizerName+"*")
	}
	if q.ExcludeID != "" {
		query.Neq("event_id", q.ExcludeID)
	}
	if q.From != nil {
		query.Gte("date_time", calendar.QueryFormat(*q.From))
	}
	if q.To != nil {
		query.Lte("date_time", calendar.QueryFormat(*q.To))
	}
	if q.Search != "" {
		query.WebSearch("name", q.Search, searchConfig)
	}

	if q.Order == models.OrderFeaturedFirst {
		query.Order("featured", false)
	}
	query.Order("date_time", true)

	if q.Limit > 0 {
		query.Limit(q.Limit)
	}
	return query
}

// ListEvents runs q.
func (s *EventSource) ListEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error) {
	var rows []eventRow
	if err := s.client.fetch(ctx, BuildEventQuery(s.client, q), &rows); err != nil {
		return nil, fmt.Errorf("list events (%s): %w", q.Describe(), err)
	}
	return decodeEvents(ctx, rows)
}

// GetEvent loads one event by its public id, whatever its status.
func (s *EventSource) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	query := s.client.From(eventsTable).
		Select(eventColumns).
		Eq("event_id", eventID).
		Limit(1)

	var rows []eventRow
	if err := s.client.fetch(ctx, query, &rows); err != nil {
		return models.Event{}, fmt.Errorf("get event %s: %w", eventID, err)
	}
	if len(rows) == 0 {
		return models.Event{}, events.ErrEventNotFound
	}
	return rows[0].toModel()
}

// decodeEvents skips rows that cannot be decoded. It only fails when no
// row could be read at all.
func decodeEvents(ctx context.Context, rows []eventRow) ([]models.Event, error) {
	out := make([]models.Event, 0, len(rows))
	var errs []error
	for _, r := range rows {
		e, err := r.toModel()
		if err != nil {
			logging.WithContext(ctx).Warn().Err(err).Msg("skipping undecodable event row")
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
