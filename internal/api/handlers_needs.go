package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/verdantlab/sacredgarden/internal/models"
	"github.com/verdantlab/sacredgarden/internal/services"
)

func (handler *Handler) CreateNeed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := createNeedInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	valueType := models.ValueTypeRelative
	if input.StateValueType != nil {
		valueType = *input.StateValueType
	}

	need, err := handler.needService.CreateNeed(user, input.Name, valueType, input.InitialStatus)
	if err != nil {
		return serviceError(c, err)
	}

	entry := services.NeedWithCurrentState{Need: need}
	if current, err := handler.needService.CurrentState(need.ID); err == nil {
		entry.CurrentState = &current
	}
	return c.Status(fiber.StatusCreated).JSON(buildNeedView(entry))
}

func (handler *Handler) GetNeed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	needID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	need, err := handler.needService.FindNeed(needID)
	if err != nil {
		return serviceError(c, err)
	}
	owner, err := handler.authService.FindByID(need.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	if !services.CanViewNeed(user, &owner) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	entry := services.NeedWithCurrentState{Need: need}
	if current, err := handler.needService.CurrentState(need.ID); err == nil {
		entry.CurrentState = &current
	}
	return c.JSON(buildNeedView(entry))
}

func (handler *Handler) DeleteNeed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	needID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.needService.DeleteNeed(user, needID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetNeedStateHistory returns the visible rows oldest first, each with its
// derived display value.
func (handler *Handler) GetNeedStateHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	needID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	history, err := handler.needService.History(user, needID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"results": buildHistoryViews(history)})
}

func (handler *Handler) CreateNeedState(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := createNeedStateInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	need, err := handler.needService.FindNeed(input.EmotionalNeedID)
	if err != nil {
		return serviceError(c, err)
	}

	transition := services.StateTransitionInput{
		Status:           input.Status,
		ValueAbs:         input.ValueAbs,
		ValueRel:         input.ValueRel,
		Text:             input.Text,
		AppreciationText: input.AppreciationText,
	}
	if err := services.ValidateStateValue(need.StateValueType, transition); err != nil {
		return serviceError(c, err)
	}

	state, err := handler.needService.CreateStateTransition(user, need.ID, transition)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildStateView(state))
}

func (handler *Handler) UpdateNeedState(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	stateID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	input := updateNeedStateInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	state, err := handler.needService.UpdateState(user, stateID, input.Status, input.Text, input.AppreciationText)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(buildStateView(state))
}

func (handler *Handler) DeleteNeedState(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	stateID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.needService.DeleteState(user, stateID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
