package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListLetters(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	letters, err := handler.letterService.ListFor(user)
	if err != nil {
		return serviceError(c, err)
	}

	views := make([]letterView, 0, len(letters))
	for _, letter := range letters {
		views = append(views, buildLetterView(letter))
	}
	return c.JSON(fiber.Map{"results": views})
}

func (handler *Handler) SendLetter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := letterInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	letter, err := handler.letterService.Send(user, input.Text, input.AppreciationText, input.AdviceText)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildLetterView(letter))
}

func (handler *Handler) GetLetter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	letterID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	letter, err := handler.letterService.Get(user, letterID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buildLetterView(letter))
}

func (handler *Handler) UpdateLetter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	letterID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	input := letterInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	letter, err := handler.letterService.Update(user, letterID, input.Text, input.AppreciationText, input.AdviceText)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buildLetterView(letter))
}

func (handler *Handler) DeleteLetter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	letterID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.letterService.Delete(user, letterID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) MarkLetterRead(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	letterID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.letterService.MarkRead(user, letterID); err != nil {
		return serviceError(c, err)
	}
	letter, err := handler.letterService.Get(user, letterID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buildLetterView(letter))
}

func (handler *Handler) MarkLetterAcknowledged(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	letterID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.letterService.MarkAcknowledged(user, letterID); err != nil {
		return serviceError(c, err)
	}
	letter, err := handler.letterService.Get(user, letterID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buildLetterView(letter))
}

// ListAppreciations is the merged feed of appreciation texts addressed to
// the caller, from letters and from partner need states.
func (handler *Handler) ListAppreciations(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.letterService.AppreciationFeed(user)
	if err != nil {
		return serviceError(c, err)
	}

	views := make([]appreciationView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, appreciationView{
			ID:               entry.ID,
			SourceEntity:     entry.SourceEntity,
			AppreciationText: entry.AppreciationText,
			EmotionalNeedID:  entry.EmotionalNeedID,
			CreatedAt:        entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"results": views})
}
