package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ivarberg/internal/calendar"
	"ivarberg/internal/events"
	"ivarberg/internal/models"
)

var _ events.Source = (*Store)(nil)

const eventSelect = `
		SELECT e.id, e.event_id, e.name, e.category, e.categories, e.category_scores,
			e.date_time, e.location, e.venue_name, e.price, e.image_url, e.description,
			e.description_format, e.organizer_event_url, e.featured, e.status,
			e.max_participants, e.tags, e.organizer_id, e.created_at, e.updated_at,
			o.id, o.name, o.location, o.phone, o.email, o.website
		FROM events e
		LEFT JOIN organizers o ON o.id = e.organizer_id
	`

// ListEvents runs q.
func (s *Store) ListEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error) {
	query, args := buildEventQuery(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select events (%s): %w", q.Describe(), err)
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return out, nil
}

// GetEvent loads one event by its public id, whatever its status.
func (s *Store) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	row := s.db.QueryRowContext(ctx, eventSelect+`WHERE e.event_id = $1`, eventID)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, events.ErrEventNotFound
		}
		return models.Event{}, err
	}
	return e, nil
}

func buildEventQuery(q models.EventQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if q.Status != "" {
		args = append(args, string(q.Status))
		clauses = append(clauses, fmt.Sprintf("e.status = $%d", len(args)))
	}
	if q.FeaturedOnly {
		clauses = append(clauses, "e.featured = TRUE")
	}
	if q.Category != "" {
		args = append(args, string(q.Category))
		clauses = append(clauses, fmt.Sprintf("($%d = ANY(e.categories) OR e.category = $%d)", len(args), len(args)))
	}
	if q.OrganizerID != nil {
		args = append(args, *q.OrganizerID)
		clauses = append(clauses, fmt.Sprintf("e.organizer_id = $%d", len(args)))
	}
	if name := strings.TrimSpace(q.OrganizerName); name != "" {
		args = append(args, "%"+name+"%")
		clauses = append(clauses, fmt.Sprintf("o.name ILIKE $%d", len(args)))
	}
	if q.ExcludeID != "" {
		args = append(args, q.ExcludeID)
		clauses = append(clauses, fmt.Sprintf("e.event_id <> $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, calendar.QueryFormat(*q.From))
		clauses = append(clauses, fmt.Sprintf("e.date_time >= $%d::timestamp", len(args)))
	}
	if q.To != nil {
		args = append(args, calendar.QueryFormat(*q.To))
		clauses = append(clauses, fmt.Sprintf("e.date_time <= $%d::timestamp", len(args)))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		args = append(args, term)
		clauses = append(clauses, fmt.Sprintf("to_tsvector('swedish', e.name) @@ websearch_to_tsquery('swedish', $%d)", len(args)))
	}

	query := eventSelect
	if len(clauses) > 0 {
		query += "WHERE " + strings.Join(clauses, " AND ")
	}

	if q.Order == models.OrderFeaturedFirst {
		query += " ORDER BY e.featured DESC, e.date_time ASC, e.id ASC"
	} else {
		query += " ORDER BY e.date_time ASC, e.id ASC"
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e           models.Event
		category    sql.NullString
		cats        []string
		scores      []byte
		venue       sql.NullString
		price       sql.NullString
		image       sql.NullString
		description sql.NullString
		format      sql.NullString
		orgURL      sql.NullString
		maxPart     sql.NullInt32
		tags        []string
		organizerID sql.NullInt64
		updatedAt   sql.NullTime
		orgRowID    sql.NullInt64
		orgName     sql.NullString
		orgLocation sql.NullString
		orgPhone    sql.NullString
		orgEmail    sql.NullString
		orgWebsite  sql.NullString
		status      string
	)

	err := row.Scan(
		&e.ID, &e.EventID, &e.Name, &category, pq.Array(&cats), &scores,
		&e.DateTime, &e.Location, &venue, &price, &image, &description,
		&format, &orgURL, &e.Featured, &status,
		&maxPart, pq.Array(&tags), &organizerID, &e.CreatedAt, &updatedAt,
		&orgRowID, &orgName, &orgLocation, &orgPhone, &orgEmail, &orgWebsite,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, err
		}
		return models.Event{}, fmt.Errorf("scan event: %w", err)
	}

	// date_time has no zone; drivers hand it back as UTC wall clock.
	e.DateTime = calendar.InLocal(e.DateTime)
	e.CreatedAt = calendar.Local(e.CreatedAt)
	e.Status = models.Status(status)
	e.Category = models.Category(category.String)
	for _, c := range cats {
		e.Categories = append(e.Categories, models.Category(c))
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &e.CategoryScores); err != nil {
			return models.Event{}, fmt.Errorf("decode category scores: %w", err)
		}
	}
	e.VenueName = stringPtr(venue)
	e.Price = stringPtr(price)
	e.ImageURL = stringPtr(image)
	e.Description = stringPtr(description)
	e.DescriptionFormat = models.DescriptionFormat(format.String)
	e.OrganizerEventURL = stringPtr(orgURL)
	if maxPart.Valid {
		v := int(maxPart.Int32)
		e.MaxParticipants = &v
	}
	e.Tags = tags
	if organizerID.Valid {
		v := organizerID.Int64
		e.OrganizerID = &v
	}
	if updatedAt.Valid {
		t := calendar.Local(updatedAt.Time)
		e.UpdatedAt = &t
	}
	if orgRowID.Valid {
		e.Organizer = &models.Organizer{
			ID:       orgRowID.Int64,
			Name:     orgName.String,
			Location: stringPtr(orgLocation),
			Phone:    stringPtr(orgPhone),
			Email:    stringPtr(orgEmail),
			Website:  stringPtr(orgWebsite),
		}
	}

	return e, nil
}
