package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"absence-tracker/internal/apperr"
)

func JsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// jsonFromError maps the business error taxonomy onto HTTP statuses. Unknown
// errors are logged and hidden behind a generic 500.
func jsonFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return JsonError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return JsonError(c, fiber.StatusConflict, err.Error())
	}

	logrus.WithError(err).Error("unexpected internal failure")
	return JsonError(c, fiber.StatusInternalServerError, "server error")
}
