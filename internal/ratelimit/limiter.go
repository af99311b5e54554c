package ratelimit

import (
	"context"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"ivarberg/internal/logging"
)

// Defaults for tip submissions.
const (
	DefaultMax    = 10
	DefaultWindow = 5 * time.Minute
	DefaultSweep  = 10 * time.Minute
)

// Limiter applies a fixed window limit per submitter. It is best effort:
// when the store fails the request is let through.
type Limiter struct {
	store  Store
	prefix string
	max    int
	window time.Duration
	now    func() time.Time
}

// NewLimiter limits each identifier to limit hits per window.
func NewLimiter(store Store, prefix string, limit int, window time.Duration) *Limiter {
	if limit < 1 {
		limit = DefaultMax
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:  store,
		prefix: prefix,
		max:    limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request from identifier.
func (l *Limiter) Allow(ctx context.Context, identifier string) Decision {
	d, err := l.store.Hit(ctx, l.Key(identifier), l.max, l.window)
	if err != nil {
		logging.WithContext(ctx).Warn().Err(err).Msg("rate limit store unavailable, allowing request")
		return Decision{Allowed: true, ResetAt: l.now().Add(l.window)}
	}
	return d
}

// Key derives the store key for identifier. Client addresses are hashed so
// they are not kept in clear text.
func (l *Limiter) Key(identifier string) string {
	sum := blake2b.Sum256([]byte(identifier))
	return l.prefix + hex.EncodeToString(sum[:])
}

// UnknownClient identifies requests without forwarding headers.
const UnknownClient = "unknown"

// ClientIdentifier returns the first X-Forwarded-For address, then
// X-Real-IP, then UnknownClient.
func ClientIdentifier(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return UnknownClient
}
