package middleware

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected rejects requests without a valid bearer token. The parsed
// token is stored under the "user" local.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized: invalid or expired token"))
		},
	})
}
