// Package newsletter stores newsletter sign-ups.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ivarberg/internal/logging"
)

var (
	// ErrAlreadySubscribed is returned when the address is already on the list.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrInvalidEmail is returned for addresses that do not look like email.
	ErrInvalidEmail = errors.New("invalid email address")
)

// User facing messages.
const (
	MsgAlreadySubscribed = "Du prenumererar redan på nyhetsbrevet"
	MsgInvalidEmail      = "Ogiltig e-postadress"
	MsgSubscribed        = "Tack! Du prenumererar nu på nyhetsbrevet"
)

// Store inserts subscriptions. Implementations return ErrAlreadySubscribed
// on a unique violation of the email column.
type Store interface {
	Subscribe(ctx context.Context, email string) error
}

var validate = validator.New()

// Service handles newsletter subscriptions.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Subscribe normalizes email and adds it to the list.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	email, err := Normalize(email)
	if err != nil {
		return err
	}

	if err := s.store.Subscribe(ctx, email); err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("subscribe: %w", err)
	}

	logging.WithContext(ctx).Info().Msg("newsletter subscription stored")
	return nil
}

// Normalize trims and lowercases email and checks its shape.
func Normalize(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}
