// Package tips accepts event tips from the public form and stores them as
// pending records for manual review.
package tips

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ivarberg/internal/logging"
	"ivarberg/internal/metrics"
	"ivarberg/internal/models"
	"ivarberg/internal/ratelimit"
)

var (
	// ErrRateLimited is matched by *RateLimitError.
	ErrRateLimited = errors.New("too many tip submissions")
	// ErrStorage wraps failures of the tip store.
	ErrStorage = errors.New("tip storage failed")
)

// RateLimitError rejects a submitter who used up the current window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many tip submissions, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// Store persists tips.
type Store interface {
	CreateTip(ctx context.Context, tip models.EventTip) (int64, error)
}

// Service validates and forwards tip submissions.
type Service struct {
	store   Store
	limiter *ratelimit.Limiter
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService constructs a Service. A nil limiter disables rate limiting.
func NewService(store Store, limiter *ratelimit.Limiter, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		limiter: limiter,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit counts the attempt against identifier, validates sub and stores
// the normalized tip. It returns the id of the created tip.
func (s *Service) Submit(ctx context.Context, identifier string, sub Submission) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if s.limiter != nil {
		decision := s.limiter.Allow(ctx, identifier)
		if !decision.Allowed {
			s.metrics.TipSubmission("rate_limited")
			return 0, &RateLimitError{RetryAfter: decision.RetryAfter(s.now())}
		}
	}

	if err := Validate(sub); err != nil {
		s.metrics.TipSubmission("invalid")
		return 0, err
	}

	tip := Normalize(sub, s.now())
	id, err := s.store.CreateTip(ctx, tip)
	if err != nil {
		s.metrics.TipSubmission("failed")
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.metrics.TipSubmission("accepted")
	logging.WithContext(ctx).Info().
		Int64("tip_id", id).
		Str("event_name", tip.EventName).
		Msg("event tip stored")
	return id, nil
}

// Normalize trims sub and derives the stored record. The venue falls back
// to the location and the main category is the first selected one.
func Normalize(sub Submission, now time.Time) models.EventTip {
	location := strings.TrimSpace(sub.EventLocation)
	venue := strings.TrimSpace(sub.VenueName)
	if venue == "" {
		venue = location
	}

	cats := make([]models.Category, 0, len(sub.Categories))
	for _, c := range sub.Categories {
		cats = append(cats, models.Category(c))
	}
	main := models.Category(sub.Category)
	if len(cats) > 0 && cats[0] != "" {
		main = cats[0]
	}

	now = now.UTC()
	return models.EventTip{
		EventName:        strings.TrimSpace(sub.EventName),
		EventDate:        sub.DateTime,
		DateTime:         sub.DateTime,
		EventLocation:    location,
		VenueName:        venue,
		EventDescription: strings.TrimSpace(sub.Description),
		Categories:       cats,
		Category:         main,
		ImageURL:         optional(sub.ImageURL),
		WebsiteURL:       optional(sub.WebsiteURL),
		SubmitterEmail:   optional(sub.SubmitterEmail),
		SubmitterName:    optional(sub.SubmitterName),
		Status:           models.TipStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
