package events

import (
	"context"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/logging"
	"ivarberg/internal/models"
)

// SimilarLimit caps both each category query and the merged result.
const SimilarLimit = 6

// SimilarWindow returns the days searched for events similar to one that
// starts at start: the day before through the day after, never before today.
// ok is false when the window lies entirely in the past.
func SimilarWindow(start, now time.Time) (from, to time.Time, ok bool) {
	from = calendar.StartOfDay(calendar.AddDays(start, -1))
	if today := calendar.Today(now); from.Before(today) {
		from = today
	}
	to = calendar.EndOfDay(calendar.AddDays(start, 1))
	return from, to, !to.Before(from)
}

// Similar returns up to six other published events sharing a category with
// focal and starting within a day of it. Categories are queried one at a
// time; a failed query is logged and skipped.
func (s *Service) Similar(ctx context.Context, focal models.EventDisplay) []models.EventDisplay {
	from, to, ok := SimilarWindow(focal.Date, s.now())
	if !ok {
		return []models.EventDisplay{}
	}

	cats := focal.Categories
	if len(cats) == 0 && focal.Category != "" && focal.Category != models.CategoryUncategorized {
		cats = []models.Category{focal.Category}
	}

	seen := map[string]struct{}{focal.ID: {}}
	merged := []models.EventDisplay{}
	window := calendar.Range{Start: from, End: to}

	for _, c := range cats {
		if err := ctx.Err(); err != nil {
			break
		}

		rows, err := s.source.ListEvents(ctx, models.EventQuery{
			Status:    models.StatusPublished,
			Category:  c,
			ExcludeID: focal.ID,
			From:      &from,
			To:        &to,
			Order:     models.OrderFeaturedFirst,
			Limit:     SimilarLimit,
		})
		s.metrics.UpstreamQuery(s.sourceName, "similar", err)
		if err != nil {
			logging.WithContext(ctx).Warn().
				Err(err).
				Str("event_id", focal.ID).
				Str("category", string(c)).
				Msg("similar events query failed, skipping category")
			continue
		}

		for _, d := range ToDisplayAll(rows) {
			if _, dup := seen[d.ID]; dup {
				continue
			}
			if !window.Contains(d.Date) {
				continue
			}
			seen[d.ID] = struct{}{}
			merged = append(merged, d)
		}
	}

	Sort(merged)
	if len(merged) > SimilarLimit {
		merged = merged[:SimilarLimit]
	}
	return merged
}
