package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository/repotest"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var t0 = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type sentCode struct {
	to   string
	code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (m *fakeMailer) SendPasswordResetCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentCode{to: to, code: code})
	return nil
}

func (m *fakeMailer) last(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no reset code was sent")
	}
	return m.sent[len(m.sent)-1].code
}

type fixture struct {
	store    *repotest.Store
	clock    *clock
	mailer   *fakeMailer
	security *SecurityService
	activity *ActivityService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := &clock{now: t0}
	store := repotest.NewStore()
	store.SetClock(clk.Now)

	cfg := &config.Config{
		JWTSecret:        testSecret,
		JWTExpiry:        7 * 24 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
		RateLimitEnabled: true,
	}

	f := &fixture{store: store, clock: clk, mailer: &fakeMailer{}}
	f.security = NewSecurityService(store.Factory(), cfg.RateLimitEnabled)
	f.security.now = clk.Now
	f.activity = NewActivityService(store.Factory())
	f.activity.now = clk.Now
	f.auth = NewAuthService(store.Factory(), cfg, f.security, f.mailer, f.activity)
	f.auth.now = clk.Now
	f.auth.tokens.now = clk.Now
	return f
}

func (f *fixture) seedUser(t *testing.T, email, password, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{
		ID:        uuid.New(),
		FullName:  "Test " + role,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: f.clock.Now(),
	}
	f.store.Seed(u)
	return u
}

func (f *fixture) seedDoctor(t *testing.T, name, email, password string) *models.Doctor {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	d := &models.Doctor{
		ID:             uuid.New(),
		Name:           name,
		Specialization: "Ortodonti",
		Email:          email,
		Password:       string(hash),
		IsAvailable:    true,
		Role:           models.RoleDoctor,
		CreatedAt:      f.clock.Now(),
	}
	f.store.Seed(d)
	return d
}

var errSMTPDown = errors.New("smtp: connection refused")
