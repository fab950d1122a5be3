package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/verdantlab/sacredgarden/internal/models"
)

type checkUserInput struct {
	Email string `json:"email" validate:"required,email"`
}

type registerInput struct {
	Email      string `json:"email"       validate:"required,email"`
	FirstName  string `json:"first_name"  validate:"max=100"`
	Password   string `json:"password"    validate:"required"`
	InviteCode string `json:"invite_code" validate:"required"`
}

type credentialsInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordInput struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileInput struct {
	FirstName   *string `json:"first_name"   validate:"omitempty,max=100"`
	PartnerName *string `json:"partner_name" validate:"omitempty,max=100"`
}

type connectPartnerInput struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

type createNeedInput struct {
	Name           string            `json:"name"             validate:"required,max=200"`
	StateValueType *models.ValueType `json:"state_value_type"`
	InitialStatus  *models.Status    `json:"initial_status"`
}

type createNeedStateInput struct {
	EmotionalNeedID  uint          `json:"emotional_need_id" validate:"required"`
	Status           models.Status `json:"status"`
	ValueAbs         *int          `json:"value_abs"`
	ValueRel         *models.Trend `json:"value_rel"`
	Text             string        `json:"text"              validate:"max=5000"`
	AppreciationText string        `json:"appreciation_text" validate:"max=5000"`
}

type updateNeedStateInput struct {
	Status           models.Status `json:"status"`
	Text             string        `json:"text"              validate:"max=5000"`
	AppreciationText string        `json:"appreciation_text" validate:"max=5000"`
}

type letterInput struct {
	Text             string `json:"text"              validate:"required,max=10000"`
	AppreciationText string `json:"appreciation_text" validate:"max=10000"`
	AdviceText       string `json:"advice_text"       validate:"max=10000"`
}

func (handler *Handler) parseBody(c *fiber.Ctx, target any) error {
	if err := c.BodyParser(target); err != nil {
		return err
	}
	return handler.validate.Struct(target)
}
