package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Registration successful", resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Login successful", resp)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principalID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), principalID, &req); err != nil {
		return fail(c, err)
	}
	return ok(c, "Password changed successfully", nil)
}

func (h *AuthHandler) SendPasswordResetEmail(c *fiber.Ctx) error {
	var req dto.SendPasswordResetEmailRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.SendPasswordResetEmail(c.UserContext(), req.Email, c.IP()); err != nil {
		return fail(c, err)
	}
	return ok(c, "Password reset code sent", nil)
}

// ForgotPassword is kept for older mobile clients.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.SendPasswordResetEmailRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ForgotPassword(c.UserContext(), req.Email, c.IP()); err != nil {
		return fail(c, err)
	}
	return ok(c, "Password reset code sent", nil)
}

func (h *AuthHandler) VerifyResetCode(c *fiber.Ctx) error {
	var req dto.VerifyResetCodeRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.VerifyResetCode(c.UserContext(), req.Email, req.ResetCode, c.IP()); err != nil {
		return fail(c, err)
	}
	return ok(c, "Reset code is valid", nil)
}

func (h *AuthHandler) ResetPasswordWithToken(c *fiber.Ctx) error {
	var req dto.ResetPasswordWithTokenRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	err := h.authService.ResetPasswordWithToken(c.UserContext(), req.Email, req.ResetCode, req.NewPassword, c.IP())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Password has been reset", nil)
}

func (h *AuthHandler) CreateAdminUser(c *fiber.Ctx) error {
	var req dto.SaveUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.userService.CreateAdminUser(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Admin user created", user)
}

// CreateFirstAdmin is public and only works while no admin exists.
func (h *AuthHandler) CreateFirstAdmin(c *fiber.Ctx) error {
	var req dto.SaveUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.userService.CreateFirstAdmin(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "First admin user created", user)
}
