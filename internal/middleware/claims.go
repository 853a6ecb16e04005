package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoPrincipal = errors.New("no authenticated user in request")

// Claims returns the claims of the token JWTProtected accepted.
func Claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// UserID extracts the userId claim. For doctors it equals the doctor ID.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := Claims(c)
	if !ok {
		return uuid.Nil, ErrNoPrincipal
	}
	sub, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing userId claim")
	}
	return uuid.Parse(sub)
}

// DoctorID extracts the doctorId claim, present only on doctor tokens.
func DoctorID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := Claims(c)
	if !ok {
		return uuid.Nil, ErrNoPrincipal
	}
	id, ok := claims["doctorId"].(string)
	if !ok {
		return uuid.Nil, errors.New("not a doctor token")
	}
	return uuid.Parse(id)
}

// Actor describes the caller for audit columns and activity entries. Requests
// without a token get the zero Actor.
func Actor(c *fiber.Ctx) services.Actor {
	claims, ok := Claims(c)
	if !ok {
		return services.Actor{}
	}
	var actor services.Actor
	if id, err := UserID(c); err == nil {
		actor.ID = &id
	}
	actor.Name, _ = claims["name"].(string)
	actor.Email, _ = claims["email"].(string)
	actor.Role, _ = claims["role"].(string)
	return actor
}
