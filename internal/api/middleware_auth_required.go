package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// StaffOnly guards the invite management endpoints. AuthRequired must run
// first.
func (handler *Handler) StaffOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || !user.IsStaff {
		return apiError(c, fiber.StatusForbidden, "staff only")
	}
	return c.Next()
}
