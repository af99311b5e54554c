package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ivarberg/internal/config"
	"ivarberg/internal/events"
	"ivarberg/internal/httpapi"
	"ivarberg/internal/metrics"
	"ivarberg/internal/newsletter"
	"ivarberg/internal/organizers"
	"ivarberg/internal/ratelimit"
	"ivarberg/internal/store"
	"ivarberg/internal/supabase"
	"ivarberg/internal/tips"
)

// backend bundles the stores of one data source.
type backend struct {
	name       string
	events     events.Source
	tips       tips.Store
	newsletter newsletter.Store
	pages      organizers.Store
	health     httpapi.Pinger
	close      func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := store.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		dataStore := store.New(db)
		return &backend{
			name:       config.BackendPostgres,
			events:     dataStore,
			tips:       dataStore,
			newsletter: dataStore,
			pages:      dataStore,
			health:     dataStore,
			close:      db.Close,
		}, nil

	case config.BackendSupabase:
		client, err := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Timeout)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:       config.BackendSupabase,
			events:     supabase.NewEventSource(client),
			tips:       supabase.NewTipStore(client),
			newsletter: supabase.NewNewsletterStore(client),
			pages:      supabase.NewPageStore(client),
			close:      func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newLimiterStore returns the shared redis store when REDIS_URL is set.
// Otherwise counters live in memory and a cron job sweeps expired windows.
func newLimiterStore(ctx context.Context, cfg config.RateLimitConfig, scheduler *cron.Cron, m *metrics.Metrics) (ratelimit.Store, func() error, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			// The limiter fails open, so an unreachable redis is not fatal.
			log.Warn().Err(err).Msg("redis not reachable, rate limiting disabled until it is")
		}
		log.Info().Str("addr", opts.Addr).Msg("rate limit counters stored in redis")
		return ratelimit.NewRedisStore(client), client.Close, nil
	}

	mem := ratelimit.NewMemoryStore()
	if _, err := ratelimit.ScheduleSweep(scheduler, cfg.Sweep, mem, m); err != nil {
		return nil, nil, err
	}
	log.Info().Dur("sweep", cfg.Sweep).Msg("rate limit counters stored in memory")
	return mem, func() error { return nil }, nil
}
