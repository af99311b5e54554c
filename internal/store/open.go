package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"ivarberg/internal/logging"
)

// ConnectOptions bounds how long Open waits for the database to come up.
type ConnectOptions struct {
	PingTimeout    time.Duration
	MaxWait        time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultConnectOptions suits a database container that starts alongside
// the service.
var DefaultConnectOptions = ConnectOptions{
	PingTimeout:    5 * time.Second,
	MaxWait:        30 * time.Second,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
}

// Open connects with driver ("pgx" or "postgres") and waits until the
// database answers a ping, using DefaultConnectOptions.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	return OpenWith(ctx, driver, dsn, DefaultConnectOptions)
}

// OpenWith is Open with explicit retry bounds.
func OpenWith(ctx context.Context, driver, dsn string, opts ConnectOptions) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := waitReady(ctx, New(db), opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// waitReady pings s until it answers, the wait budget is spent or ctx ends.
func waitReady(ctx context.Context, s *Store, opts ConnectOptions) error {
	logger := logging.WithContext(ctx)
	giveUp := time.Now().Add(opts.MaxWait)

	for attempt, delay := 1, opts.InitialBackoff; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := s.Ping(pingCtx)
		cancel()
		if err == nil {
			if attempt > 1 {
				logger.Info().Int("attempts", attempt).Msg("database ready")
			}
			return nil
		}

		if ctx.Err() != nil || !time.Now().Add(delay).Before(giveUp) {
			return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
		}

		logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("database not ready")
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("database not ready after %d attempts: %w", attempt, ctx.Err())
		case <-timer.C:
		}
		delay = min(delay*2, opts.MaxBackoff)
	}
}
