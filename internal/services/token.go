package services

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// TokenIssuer signs HS256 access tokens. There is no refresh token and no
// revocation list; a token is good until exp.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// ForUser issues a token for a patient or admin.
func (t *TokenIssuer) ForUser(u *models.User) (string, error) {
	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	return t.sign(jwt.MapClaims{
		"userId": u.ID.String(),
		"email":  u.Email,
		"name":   u.FullName,
		"role":   role,
	})
}

// ForDoctor issues a token whose userId and doctorId are both the doctor's ID.
func (t *TokenIssuer) ForDoctor(d *models.Doctor) (string, error) {
	return t.sign(jwt.MapClaims{
		"userId":         d.ID.String(),
		"email":          d.Email,
		"name":           d.Name,
		"role":           models.RoleDoctor,
		"doctorId":       d.ID.String(),
		"doctorName":     d.Name,
		"specialization": d.Specialization,
	})
}

func (t *TokenIssuer) sign(claims jwt.MapClaims) (string, error) {
	now := t.now()
	claims["jti"] = ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(t.expiry).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
