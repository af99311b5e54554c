package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	emails map[string]bool
	err    error
}

func (s *stubStore) Subscribe(_ context.Context, email string) error {
	if s.err != nil {
		return s.err
	}
	if s.emails[email] {
		return ErrAlreadySubscribed
	}
	s.emails[email] = true
	return nil
}

func TestSubscribe(t *testing.T) {
	store := &stubStore{emails: map[string]bool{}}
	svc := NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, "  Anna@Example.SE "))
	assert.True(t, store.emails["anna@example.se"])

	err := svc.Subscribe(ctx, "anna@example.se")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := NewService(&stubStore{emails: map[string]bool{}})

	for _, email := range []string{"", "   ", "anna", "anna@", "@example.se"} {
		assert.ErrorIs(t, svc.Subscribe(context.Background(), email), ErrInvalidEmail, email)
	}
}

func TestSubscribeStoreFailure(t *testing.T) {
	svc := NewService(&stubStore{err: errors.New("connection reset")})

	err := svc.Subscribe(context.Background(), "anna@example.se")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadySubscribed)
}
