package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errInvalidBody = errors.New("invalid request body")

// fail reports err with status 400. Unexpected errors are logged first.
func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrUnknown) {
		logging.LogError(slog.Default(), "request failed", err,
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
		)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.OK(message, data))
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(message, data))
}

// parseBody decodes the JSON body into req and checks its validate tags.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return dto.Validate(req)
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date: " + s)
	}
	return t, nil
}
