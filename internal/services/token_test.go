package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer() *TokenIssuer {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	issuer.now = func() time.Time { return t0 }
	return issuer
}

func TestTokenIssuer_ForUser(t *testing.T) {
	u := &models.User{ID: uuid.New(), Email: "hasta@example.com", FullName: "Ali Veli"}

	signed, err := newTestIssuer().ForUser(u)
	require.NoError(t, err)

	claims := parseClaims(t, signed)
	assert.Equal(t, u.ID.String(), claims["userId"])
	assert.Equal(t, models.RoleUser, claims["role"])
	assert.Equal(t, "Ali Veli", claims["name"])
	assert.Equal(t, float64(t0.Add(time.Hour).Unix()), claims["exp"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotContains(t, claims, "doctorId")
}

func TestTokenIssuer_ForDoctor(t *testing.T) {
	d := &models.Doctor{ID: uuid.New(), Email: "ayse@example.com", Name: "Ayşe Demir", Specialization: "Ortodonti"}

	signed, err := newTestIssuer().ForDoctor(d)
	require.NoError(t, err)

	claims := parseClaims(t, signed)
	assert.Equal(t, d.ID.String(), claims["userId"])
	assert.Equal(t, d.ID.String(), claims["doctorId"])
	assert.Equal(t, models.RoleDoctor, claims["role"])
	assert.Equal(t, "Ortodonti", claims["specialization"])
}

func TestTokenIssuer_Expires(t *testing.T) {
	signed, err := newTestIssuer().ForUser(&models.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte(testSecret), nil },
		jwt.WithTimeFunc(func() time.Time { return t0.Add(2 * time.Hour) }))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
