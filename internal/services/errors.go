package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset code")
	ErrAlreadyExists         = errors.New("email already registered")
	ErrDeliveryFailure       = errors.New("failed to send email")
	ErrUnknown               = errors.New("unexpected error")
	ErrRateLimited           = errors.New("too many attempts, please try again later")
	ErrBlocked               = errors.New("too many failed attempts, access temporarily blocked")
	ErrValidation            = errors.New("validation failed")
)

// notFound maps repository.ErrNotFound onto ErrNotFound with a subject, and
// anything else onto ErrUnknown.
func notFound(err error, subject string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %w", subject, ErrNotFound)
	}
	return unknown(err)
}

// unknown wraps an unexpected failure so both ErrUnknown and the cause match
// with errors.Is and the cause's message passes through.
func unknown(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnknown, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeFailure maps a failed Complete, turning unique violations into
// ErrAlreadyExists.
func storeFailure(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return unknown(err)
}
