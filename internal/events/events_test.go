package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/models"
)

type stubSource struct {
	queries []models.EventQuery

	rows       []models.Event
	byCategory map[models.Category][]models.Event
	listErr    error
	failFor    models.Category

	event  models.Event
	getErr error
}

func (s *stubSource) ListEvents(ctx context.Context, q models.EventQuery) ([]models.Event, error) {
	s.queries = append(s.queries, q)
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.failFor != "" && q.Category == s.failFor {
		return nil, errors.New("upstream timeout")
	}
	if s.byCategory != nil {
		return s.byCategory[q.Category], nil
	}
	return s.rows, nil
}

func (s *stubSource) GetEvent(ctx context.Context, eventID string) (models.Event, error) {
	if s.getErr != nil {
		return models.Event{}, s.getErr
	}
	return s.event, nil
}

func local(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, calendar.Location)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func row(id string, start time.Time, cats ...models.Category) models.Event {
	return models.Event{
		EventID:    id,
		Name:       "Event " + id,
		Categories: cats,
		DateTime:   start,
		Location:   "Stortorget, Varberg",
		Status:     models.StatusPublished,
	}
}

func TestPublishedQueriesFromTodayFeaturedFirst(t *testing.T) {
	src := &stubSource{rows: []models.Event{row("a", local(2025, time.June, 3, 18, 0), models.CategoryScen)}}
	svc := New(src, "stub", nil).WithClock(fixedClock(local(2025, time.June, 3, 15, 20)))

	got := svc.Published(context.Background())
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected events %+v", got)
	}

	q := src.queries[0]
	if q.Status != models.StatusPublished || q.Order != models.OrderFeaturedFirst {
		t.Fatalf("unexpected query %+v", q)
	}
	if q.From == nil || !q.From.Equal(local(2025, time.June, 3, 0, 0)) {
		t.Fatalf("expected local midnight lower bound, got %v", q.From)
	}
}

func TestListFailuresYieldEmptyResults(t *testing.T) {
	src := &stubSource{listErr: errors.New("connection refused")}
	svc := New(src, "stub", nil)

	got := svc.Published(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := svc.ByCategory(context.Background(), models.CategoryJul); len(got) != 0 {
		t.Fatalf("expected no events, got %d", len(got))
	}
}

func TestFeaturedQuery(t *testing.T) {
	src := &stubSource{}
	svc := New(src, "stub", nil)

	svc.Featured(context.Background())

	q := src.queries[0]
	if !q.FeaturedOnly || q.Limit != FeaturedLimit || q.Order != models.OrderChronological {
		t.Fatalf("unexpected featured query %+v", q)
	}
}

func TestSearchAndOrganizerQueries(t *testing.T) {
	src := &stubSource{}
	svc := New(src, "stub", nil)

	if got := svc.Search(context.Background(), "   "); len(got) != 0 || len(src.queries) != 0 {
		t.Fatalf("blank search must not query")
	}

	svc.Search(context.Background(), " julmarknad ")
	if q := src.queries[0]; q.Search != "julmarknad" || q.Order != models.OrderChronological {
		t.Fatalf("unexpected search query %+v", q)
	}

	svc.ByOrganizer(context.Background(), 7)
	if q := src.queries[1]; q.OrganizerID == nil || *q.OrganizerID != 7 {
		t.Fatalf("unexpected organizer query %+v", q)
	}

	svc.ByOrganizerName(context.Background(), "Teatern")
	if q := src.queries[2]; q.OrganizerName != "Teatern" {
		t.Fatalf("unexpected organizer name query %+v", q)
	}
}

func TestByDateRangeIsNotClamped(t *testing.T) {
	src := &stubSource{}
	svc := New(src, "stub", nil).WithClock(fixedClock(local(2025, time.June, 10, 9, 0)))

	r := calendar.NewRange(local(2025, time.June, 1, 0, 0), local(2025, time.June, 2, 0, 0))
	svc.ByDateRange(context.Background(), r)

	q := src.queries[0]
	if !q.From.Equal(r.Start) || !q.To.Equal(r.End) {
		t.Fatalf("unexpected range query %v - %v", q.From, q.To)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		src     *stubSource
		id      string
		wantErr error
		wantAny bool
	}{
		{name: "found", src: &stubSource{event: row("x", local(2025, time.June, 3, 18, 0), models.CategoryScen)}, id: "x"},
		{name: "blank id", src: &stubSource{}, id: " ", wantErr: ErrEventNotFound},
		{name: "missing", src: &stubSource{getErr: fmt.Errorf("lookup: %w", ErrEventNotFound)}, id: "x", wantErr: ErrEventNotFound},
		{name: "draft hidden", src: &stubSource{event: models.Event{EventID: "x", Status: models.StatusDraft}}, id: "x", wantErr: ErrEventNotFound},
		{name: "transport", src: &stubSource{getErr: errors.New("boom")}, id: "x", wantAny: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(tc.src, "stub", nil).Get(context.Background(), tc.id)
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			case tc.wantAny:
				if err == nil || errors.Is(err, ErrEventNotFound) {
					t.Fatalf("expected transport error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("Get error: %v", err)
				}
				if got.ID != tc.id {
					t.Fatalf("unexpected event %+v", got)
				}
			}
		})
	}
}
