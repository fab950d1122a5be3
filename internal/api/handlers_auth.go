package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// CheckUser tells the registration flow whether an email belongs to a
// pre-created account and whether that account has been invited.
func (handler *Handler) CheckUser(c *fiber.Ctx) error {
	input := checkUserInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	exists, invited, err := handler.authService.CheckUser(input.Email)
	if err != nil {
		return serviceError(c, err)
	}

	response := fiber.Map{"is_existing_user": exists}
	if invited != nil {
		response["is_invited"] = *invited
	}
	return c.JSON(response)
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.authService.Register(input.Email, input.FirstName, input.Password, input.InviteCode)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user, handler.tokenTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  buildUserView(&user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := handler.buildToken(&user, handler.tokenTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"token": token,
		"user":  buildUserView(&user),
	})
}

// Refresh issues a fresh token for an authenticated caller.
func (handler *Handler) Refresh(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	token, err := handler.buildToken(user, handler.tokenTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// ForgotPassword always reports success so the endpoint does not reveal
// which emails have accounts.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	input := forgotPasswordInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.authService.ForgotPassword(input.Email); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.authService.ResetPassword(input.Token, input.Password); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
