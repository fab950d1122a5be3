package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Me returns the caller's profile together with both partners' needs and
// their current states, plus the unread letter count. This is the payload
// the home screen renders from.
func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	ownEntries, err := handler.needService.ListWithCurrentStates(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	ownNeeds := make([]needView, 0, len(ownEntries))
	for _, entry := range ownEntries {
		ownNeeds = append(ownNeeds, buildNeedView(entry))
	}

	partnerNeeds := make([]needView, 0)
	if user.HasPartner() {
		partnerEntries, err := handler.needService.ListWithCurrentStates(*user.PartnerUserID)
		if err != nil {
			return serviceError(c, err)
		}
		for _, entry := range partnerEntries {
			// The shared sample account carries per-user seeded needs; only
			// the ones tagged for this caller belong in their payload.
			if entry.Need.SampleUserPartnerID != nil && *entry.Need.SampleUserPartnerID != user.ID {
				continue
			}
			partnerNeeds = append(partnerNeeds, buildNeedView(entry))
		}
	}

	unread, err := handler.letterService.UnreadCount(user)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":                 buildUserView(user),
		"emotional_needs":      ownNeeds,
		"partner_needs":        partnerNeeds,
		"unread_letters_count": unread,
	})
}

func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := updateProfileInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.PartnerName != nil {
		updates["partner_name"] = strings.TrimSpace(*input.PartnerName)
	}
	if len(updates) == 0 {
		return apiError(c, fiber.StatusBadRequest, "nothing to update")
	}

	if err := handler.repositories.Users.UpdateByID(user.ID, updates); err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(&updated)})
}

func (handler *Handler) DeleteMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if user.HasPartner() {
		if err := handler.pairingService.DisconnectPartner(user); err != nil {
			return serviceError(c, err)
		}
	}
	if err := handler.repositories.Users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ConnectPartner(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := connectPartnerInput{}
	if err := handler.parseBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	partner, err := handler.pairingService.ConnectPartners(user, strings.TrimSpace(input.InviteCode))
	if err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user":    buildUserView(&updated),
		"partner": buildUserView(&partner),
	})
}

func (handler *Handler) DisconnectPartner(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.pairingService.DisconnectPartner(user); err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(&updated)})
}

// InviteUser is the staff flow that opens platform registration for a
// pre-created account.
func (handler *Handler) InviteUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	invited, err := handler.pairingService.InviteUser(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(&invited)})
}

func (handler *Handler) PopulateSampleData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.sampleService.Populate(user); err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(&updated)})
}

func (handler *Handler) CleanSampleData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.sampleService.Clean(user); err != nil {
		return serviceError(c, err)
	}

	updated, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"user": buildUserView(&updated)})
}
