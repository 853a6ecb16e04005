package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	MaxAttemptsPerEmailPerHour = 5
	MaxAttemptsPerIPPerHour    = 10
	MaxAttemptsPerEmailPerDay  = 20
	MaxAttemptsPerIPPerDay     = 50
)

// SecurityService guards the password reset flow with attempt counting over
// rolling windows. Checks read then decide without locking, so concurrent
// attempts may briefly overshoot a limit. Every check fails open.
type SecurityService struct {
	uow     repository.Factory
	enabled bool
	now     func() time.Time
}

type attemptLimit struct {
	q     repository.AttemptQuery
	limit int64
}

func NewSecurityService(uow repository.Factory, enabled bool) *SecurityService {
	return &SecurityService{uow: uow, enabled: enabled, now: time.Now}
}

// IsRateLimitExceeded reports whether email or ip reached an hourly or daily
// threshold for attemptType. Empty keys are not counted. Disabling the limiter
// leaves the blocked checks in force.
func (s *SecurityService) IsRateLimitExceeded(ctx context.Context, email, ip, attemptType string) bool {
	if !s.enabled {
		return false
	}

	now := s.now()
	hour, day := now.Add(-time.Hour), now.Add(-24*time.Hour)
	var checks []attemptLimit
	if email != "" {
		checks = append(checks,
			attemptLimit{repository.AttemptQuery{Email: email, AttemptType: attemptType, Since: hour}, MaxAttemptsPerEmailPerHour},
			attemptLimit{repository.AttemptQuery{Email: email, AttemptType: attemptType, Since: day}, MaxAttemptsPerEmailPerDay},
		)
	}
	if ip != "" {
		checks = append(checks,
			attemptLimit{repository.AttemptQuery{IPAddress: ip, AttemptType: attemptType, Since: hour}, MaxAttemptsPerIPPerHour},
			attemptLimit{repository.AttemptQuery{IPAddress: ip, AttemptType: attemptType, Since: day}, MaxAttemptsPerIPPerDay},
		)
	}

	uow := s.uow()
	defer uow.Close()
	for _, c := range checks {
		n, err := uow.PasswordResetAttempts().Count(ctx, c.q)
		if err != nil {
			logging.LogError(slog.Default(), "rate limit check failed", err, "email", email, "ip", ip)
			return false
		}
		if n >= c.limit {
			slog.Warn("rate limit exceeded", "email", email, "ip", ip, "attempt_type", attemptType)
			return true
		}
	}
	return false
}

// IsEmailBlocked reports whether email has the daily threshold of failed
// attempts in the last 24 hours.
func (s *SecurityService) IsEmailBlocked(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}
	return s.failedSince(ctx, repository.AttemptQuery{Email: email}) >= MaxAttemptsPerEmailPerDay
}

func (s *SecurityService) IsIPBlocked(ctx context.Context, ip string) bool {
	if ip == "" {
		return false
	}
	return s.failedSince(ctx, repository.AttemptQuery{IPAddress: ip}) >= MaxAttemptsPerIPPerDay
}

func (s *SecurityService) failedSince(ctx context.Context, q repository.AttemptQuery) int64 {
	q.Since = s.now().Add(-24 * time.Hour)
	q.FailedOnly = true

	uow := s.uow()
	defer uow.Close()
	n, err := uow.PasswordResetAttempts().Count(ctx, q)
	if err != nil {
		logging.LogError(slog.Default(), "blocked check failed", err, "email", q.Email, "ip", q.IPAddress)
		return 0
	}
	return n
}

// LogAttempt records an attempt in its own unit of work. Failures are logged
// and dropped.
func (s *SecurityService) LogAttempt(ctx context.Context, email, ip, attemptType string, successful bool) {
	uow := s.uow()
	defer uow.Close()

	uow.PasswordResetAttempts().Add(&models.PasswordResetAttempt{
		ID:           uuid.New(),
		Email:        email,
		IPAddress:    ip,
		AttemptTime:  s.now(),
		IsSuccessful: successful,
		AttemptType:  attemptType,
	})
	if _, err := uow.Complete(ctx); err != nil {
		logging.LogError(slog.Default(), "failed to record reset attempt", err, "email", email, "attempt_type", attemptType)
	}
}
