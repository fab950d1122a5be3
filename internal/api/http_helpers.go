package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/verdantlab/sacredgarden/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps the service error taxonomy onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return apiError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	value, err := c.ParamsInt(name)
	if err != nil || value <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}
