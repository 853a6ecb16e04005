package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ResetCodeTTL      = time.Hour
	MinPasswordLength = 8
	createdByAPI      = "API"
)

type AuthService struct {
	uow      repository.Factory
	tokens   *TokenIssuer
	security *SecurityService
	email    EmailSender
	activity ActivitySink
	cost     int
	now      func() time.Time

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(uow repository.Factory, cfg *config.Config, security *SecurityService, email EmailSender, activity ActivitySink) *AuthService {
	return &AuthService{
		uow:      uow,
		tokens:   NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry),
		security: security,
		email:    email,
		activity: activity,
		cost:     cfg.BcryptCost,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || len(req.Password) < MinPasswordLength {
		return nil, invalid("email required and password must be at least %d characters", MinPasswordLength)
	}

	uow := s.uow()
	defer uow.Close()

	if err := emailAvailable(ctx, uow, email); err != nil {
		metrics.RecordRegistration(metrics.ResultFailure)
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        email,
		Password:     hash,
		MobileNumber: req.MobileNumber,
		Role:         models.RoleUser,
		CreatedBy:    createdByAPI,
	}
	uow.Users().Add(user)
	if _, err := uow.Complete(ctx); err != nil {
		metrics.RecordRegistration(metrics.ResultFailure)
		return nil, storeFailure(err)
	}
	metrics.RecordRegistration(metrics.ResultSuccess)

	s.activity.Record(ctx, ActivityEvent{
		Type:        models.ActivityUserRegistration,
		Description: fmt.Sprintf("New user registered: %s", displayName(user.FullName, user.Email)),
		UserID:      &user.ID,
		UserName:    user.FullName,
	})

	token, err := s.tokens.ForUser(user)
	if err != nil {
		return nil, unknown(err)
	}
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Login checks doctors before users. Unknown emails and wrong passwords fail
// identically.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uow()
	defer uow.Close()

	user, doctor, err := findAccount(ctx, uow, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			checkPassword(s.dummyHash(), req.Password)
			metrics.RecordLogin("unknown", metrics.ResultFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if doctor != nil {
		if !checkPassword(doctor.Password, req.Password) {
			metrics.RecordLogin(models.RoleDoctor, metrics.ResultFailure)
			return nil, ErrInvalidCredentials
		}
		token, err := s.tokens.ForDoctor(doctor)
		if err != nil {
			return nil, unknown(err)
		}
		metrics.RecordLogin(models.RoleDoctor, metrics.ResultSuccess)
		s.activity.Record(ctx, ActivityEvent{
			Type:        models.ActivityUserLogin,
			Description: fmt.Sprintf("Doctor logged in: %s", displayName(doctor.Name, doctor.Email)),
			UserID:      &doctor.ID,
			UserName:    doctor.Name,
		})
		return &dto.AuthResponse{Token: token, Doctor: doctor}, nil
	}

	if !checkPassword(user.Password, req.Password) {
		metrics.RecordLogin(models.RoleUser, metrics.ResultFailure)
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.ForUser(user)
	if err != nil {
		return nil, unknown(err)
	}
	metrics.RecordLogin(models.RoleUser, metrics.ResultSuccess)
	s.activity.Record(ctx, ActivityEvent{
		Type:        models.ActivityUserLogin,
		Description: fmt.Sprintf("User logged in: %s", displayName(user.FullName, user.Email)),
		UserID:      &user.ID,
		UserName:    user.FullName,
	})
	return &dto.AuthResponse{Token: token, User: user}, nil
}

// ChangePassword updates the password of a user or doctor after verifying
// the current one.
func (s *AuthService) ChangePassword(ctx context.Context, principalID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < MinPasswordLength {
		return invalid("new password must be at least %d characters", MinPasswordLength)
	}

	uow := s.uow()
	defer uow.Close()

	hash, err := hashPassword(req.NewPassword, s.cost)
	if err != nil {
		return err
	}

	user, err := uow.Users().Get(ctx, principalID)
	switch {
	case err == nil:
		if !checkPassword(user.Password, req.CurrentPassword) {
			return ErrInvalidCredentials
		}
		user.Password = hash
		user.UpdatedBy = user.Email
		uow.Users().Update(user)
	case errors.Is(err, repository.ErrNotFound):
		doctor, err := uow.Doctors().Get(ctx, principalID)
		if err != nil {
			return notFound(err, "account")
		}
		if !checkPassword(doctor.Password, req.CurrentPassword) {
			return ErrInvalidCredentials
		}
		doctor.Password = hash
		doctor.UpdatedBy = doctor.Email
		uow.Doctors().Update(doctor)
	default:
		return unknown(err)
	}

	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}

// SendPasswordResetEmail issues a fresh 6-digit code for email, invalidating
// any earlier code, and mails it. If delivery fails the new code is
// invalidated again so no unusable code stays live.
func (s *AuthService) SendPasswordResetEmail(ctx context.Context, email, ip string) error {
	email = strings.TrimSpace(email)
	err := s.sendResetCode(ctx, email, ip)
	s.security.LogAttempt(ctx, email, ip, models.AttemptSendCode, err == nil)
	return err
}

// ForgotPassword is kept for older clients.
func (s *AuthService) ForgotPassword(ctx context.Context, email, ip string) error {
	return s.SendPasswordResetEmail(ctx, email, ip)
}

func (s *AuthService) sendResetCode(ctx context.Context, email, ip string) error {
	if err := s.guard(ctx, email, ip, models.AttemptSendCode); err != nil {
		return err
	}

	uow := s.uow()
	defer uow.Close()

	if _, _, err := findAccount(ctx, uow, email); err != nil {
		metrics.RecordResetCode(metrics.ResultNotFound)
		return err
	}

	now := s.now()
	prior, err := uow.PasswordResetTokens().ListValidByEmail(ctx, email, now)
	if err != nil {
		return unknown(err)
	}
	for i := range prior {
		prior[i].IsUsed = true
		uow.PasswordResetTokens().Update(&prior[i])
	}

	code, err := generateResetCode()
	if err != nil {
		return unknown(err)
	}
	token := &models.PasswordResetToken{
		ID:         uuid.New(),
		Email:      email,
		Token:      code,
		ExpiryDate: now.Add(ResetCodeTTL),
		CreatedAt:  now,
	}
	uow.PasswordResetTokens().Add(token)
	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}

	if err := s.email.SendPasswordResetCode(ctx, email, code); err != nil {
		logging.LogError(slog.Default(), "password reset email failed", err, "email", email)
		metrics.RecordResetCode(metrics.ResultFailure)
		s.invalidate(ctx, token)
		return fmt.Errorf("%w: %w", ErrDeliveryFailure, err)
	}
	metrics.RecordResetCode(metrics.ResultSuccess)
	return nil
}

func (s *AuthService) invalidate(ctx context.Context, token *models.PasswordResetToken) {
	uow := s.uow()
	defer uow.Close()

	token.IsUsed = true
	uow.PasswordResetTokens().Update(token)
	if _, err := uow.Complete(ctx); err != nil {
		logging.LogError(slog.Default(), "failed to invalidate undelivered reset code", err, "email", token.Email)
	}
}

// VerifyResetCode succeeds iff code is the live code for email. It does not
// consume the code.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code, ip string) error {
	email = strings.TrimSpace(email)
	err := s.verifyResetCode(ctx, email, code, ip)
	s.security.LogAttempt(ctx, email, ip, models.AttemptVerifyCode, err == nil)
	return err
}

func (s *AuthService) verifyResetCode(ctx context.Context, email, code, ip string) error {
	if err := s.guard(ctx, email, ip, models.AttemptVerifyCode); err != nil {
		return err
	}

	uow := s.uow()
	defer uow.Close()

	_, err := uow.PasswordResetTokens().GetValidByEmailAndCode(ctx, email, code, s.now())
	return tokenLookup(err)
}

// ResetPasswordWithToken sets a new password and consumes the code in one
// commit.
func (s *AuthService) ResetPasswordWithToken(ctx context.Context, email, code, newPassword, ip string) error {
	email = strings.TrimSpace(email)
	err := s.resetPassword(ctx, email, code, newPassword, ip)
	s.security.LogAttempt(ctx, email, ip, models.AttemptResetPassword, err == nil)
	return err
}

func (s *AuthService) resetPassword(ctx context.Context, email, code, newPassword, ip string) error {
	if len(newPassword) < MinPasswordLength {
		return invalid("new password must be at least %d characters", MinPasswordLength)
	}
	if err := s.guard(ctx, email, ip, models.AttemptResetPassword); err != nil {
		return err
	}

	uow := s.uow()
	defer uow.Close()

	token, err := uow.PasswordResetTokens().GetValidByEmailAndCode(ctx, email, code, s.now())
	if err := tokenLookup(err); err != nil {
		return err
	}

	user, doctor, err := findAccount(ctx, uow, email)
	if err != nil {
		return err
	}
	hash, err := hashPassword(newPassword, s.cost)
	if err != nil {
		return err
	}

	if doctor != nil {
		doctor.Password = hash
		doctor.UpdatedBy = createdByAPI
		uow.Doctors().Update(doctor)
	} else {
		user.Password = hash
		user.UpdatedBy = createdByAPI
		uow.Users().Update(user)
	}
	token.IsUsed = true
	uow.PasswordResetTokens().Update(token)

	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}

// guard rejects blocked and rate-limited callers before any lookup.
func (s *AuthService) guard(ctx context.Context, email, ip, attemptType string) error {
	if s.security.IsEmailBlocked(ctx, email) || s.security.IsIPBlocked(ctx, ip) {
		metrics.RecordResetRejection(attemptType, metrics.ReasonBlocked)
		return ErrBlocked
	}
	if s.security.IsRateLimitExceeded(ctx, email, ip, attemptType) {
		metrics.RecordResetRejection(attemptType, metrics.ReasonRateLimited)
		return ErrRateLimited
	}
	return nil
}

func tokenLookup(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrInvalidOrExpiredToken
	default:
		return unknown(err)
	}
}

// findAccount resolves email to a doctor or, failing that, a user. Exactly one
// return value is non-nil on success.
func findAccount(ctx context.Context, uow repository.UnitOfWork, email string) (*models.User, *models.Doctor, error) {
	doctor, err := uow.Doctors().GetByEmail(ctx, email)
	if err == nil {
		return nil, doctor, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, unknown(err)
	}

	user, err := uow.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, notFound(err, "account")
	}
	return user, nil, nil
}

// emailAvailable fails with ErrAlreadyExists when a user or doctor already
// has email.
func emailAvailable(ctx context.Context, uow repository.UnitOfWork, email string) error {
	_, _, err := findAccount(ctx, uow, email)
	switch {
	case err == nil:
		return ErrAlreadyExists
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// dummyHash is compared against when no account matches, so unknown emails
// cost as much as a wrong password.
func (s *AuthService) dummyHash() string {
	s.dummyOnce.Do(func() {
		hash, err := hashPassword(uuid.NewString(), s.cost)
		if err != nil {
			logging.LogError(slog.Default(), "failed to prepare login hash", err)
			return
		}
		s.dummy = hash
	})
	return s.dummy
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
