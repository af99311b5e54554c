package ratelimit

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"ivarberg/internal/metrics"
)

// ScheduleSweep registers a job on c that drops expired windows from store
// every interval.
func ScheduleSweep(c *cron.Cron, interval time.Duration, store *MemoryStore, m *metrics.Metrics) (cron.EntryID, error) {
	if interval <= 0 {
		interval = DefaultSweep
	}
	id, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		removed := store.Sweep(time.Now())
		remaining := store.Len()
		m.RateLimitKeys(remaining)
		log.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("rate limit sweep")
	})
	if err != nil {
		return 0, fmt.Errorf("schedule rate limit sweep: %w", err)
	}
	return id, nil
}
