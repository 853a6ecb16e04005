package middleware

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets through tokens carrying the admin role, which is taken
// from the stored account when the token is issued. Must run after
// JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := Claims(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		if IsAdmin(c) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
	}
}

// IsAdmin reports whether the request token has the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	claims, ok := Claims(c)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == models.RoleAdmin
}
