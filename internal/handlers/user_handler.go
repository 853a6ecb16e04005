package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Users retrieved", users)
}

func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	id, err := middleware.UserID(c)
	if err != nil {
		return fail(c, err)
	}
	user, err := h.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "User retrieved", user)
}

func (h *UserHandler) GetUsersByRole(c *fiber.Ctx) error {
	users, err := h.userService.GetUsersByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Users retrieved", users)
}

func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	user, err := h.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "User retrieved", user)
}

func (h *UserHandler) CreateNewUser(c *fiber.Ctx) error {
	var req dto.SaveUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.userService.CreateNewUser(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, "User created", user)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if !middleware.IsAdmin(c) {
		caller, err := middleware.UserID(c)
		if err != nil || caller != id {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("You can only update your own account"))
		}
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	user, err := h.userService.UpdateUser(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "User updated", user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.userService.DeleteUser(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, "User deleted", nil)
}
