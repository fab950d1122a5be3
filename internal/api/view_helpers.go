package api

import (
	"time"

	"github.com/verdantlab/sacredgarden/internal/models"
	"github.com/verdantlab/sacredgarden/internal/services"
)

type userView struct {
	ID                uint    `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	PartnerUserID     *uint   `json:"partner_user_id"`
	PartnerName       string  `json:"partner_name"`
	PartnerInviteCode *string `json:"partner_invite_code"`
	IsInvited         bool    `json:"is_invited"`
	IsStaff           bool    `json:"is_staff"`
	HasSampleData     bool    `json:"has_sample_data"`
}

type stateView struct {
	ID               uint             `json:"id"`
	EmotionalNeedID  uint             `json:"emotional_need_id"`
	Status           models.Status    `json:"status"`
	ValueType        models.ValueType `json:"value_type"`
	ValueAbs         *int             `json:"value_abs"`
	ValueRel         *models.Trend    `json:"value_rel"`
	DisplayedAbs     *int             `json:"displayed_value_abs,omitempty"`
	PartnerUserID    *uint            `json:"partner_user_id"`
	IsCurrent        bool             `json:"is_current"`
	Text             string           `json:"text"`
	AppreciationText string           `json:"appreciation_text"`
	CreatedAt        time.Time        `json:"created_at"`
}

type needView struct {
	ID             uint             `json:"id"`
	UserID         uint             `json:"user_id"`
	Name           string           `json:"name"`
	StateValueType models.ValueType `json:"state_value_type"`
	CreatedAt      time.Time        `json:"created_at"`
	CurrentState   *stateView       `json:"current_state"`
}

type letterView struct {
	ID               uint      `json:"id"`
	SenderID         uint      `json:"sender_id"`
	RecipientID      uint      `json:"recipient_id"`
	Text             string    `json:"text"`
	AppreciationText string    `json:"appreciation_text"`
	AdviceText       string    `json:"advice_text"`
	IsRead           bool      `json:"is_read"`
	IsAcknowledged   bool      `json:"is_acknowledged"`
	CreatedAt        time.Time `json:"created_at"`
}

type appreciationView struct {
	ID               uint      `json:"id"`
	SourceEntity     string    `json:"source_entity"`
	AppreciationText string    `json:"appreciation_text"`
	EmotionalNeedID  *uint     `json:"emotional_need_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func buildUserView(user *models.User) userView {
	return userView{
		ID:                user.ID,
		Email:             user.Email,
		FirstName:         user.FirstName,
		PartnerUserID:     user.PartnerUserID,
		PartnerName:       user.PartnerName,
		PartnerInviteCode: user.PartnerInviteCode,
		IsInvited:         user.IsInvited,
		IsStaff:           user.IsStaff,
		HasSampleData:     user.HasSampleData,
	}
}

func buildStateView(state models.EmotionalNeedState) stateView {
	return stateView{
		ID:               state.ID,
		EmotionalNeedID:  state.EmotionalNeedID,
		Status:           state.Status,
		ValueType:        state.ValueType,
		ValueAbs:         state.ValueAbs,
		ValueRel:         state.ValueRel,
		PartnerUserID:    state.PartnerUserID,
		IsCurrent:        state.IsCurrent,
		Text:             state.Text,
		AppreciationText: state.AppreciationText,
		CreatedAt:        state.CreatedAt,
	}
}

func buildNeedView(entry services.NeedWithCurrentState) needView {
	view := needView{
		ID:             entry.Need.ID,
		UserID:         entry.Need.UserID,
		Name:           entry.Need.Name,
		StateValueType: entry.Need.StateValueType,
		CreatedAt:      entry.Need.CreatedAt,
	}
	if entry.CurrentState != nil {
		current := buildStateView(*entry.CurrentState)
		view.CurrentState = &current
	}
	return view
}

func buildHistoryViews(states []models.EmotionalNeedState) []stateView {
	projections := services.DeriveRunningAbsolute(states)
	views := make([]stateView, 0, len(projections))
	for _, projection := range projections {
		view := buildStateView(projection.State)
		view.DisplayedAbs = projection.DisplayedAbs
		views = append(views, view)
	}
	return views
}

func buildLetterView(letter models.EmotionalLetter) letterView {
	return letterView{
		ID:               letter.ID,
		SenderID:         letter.SenderID,
		RecipientID:      letter.RecipientID,
		Text:             letter.Text,
		AppreciationText: letter.AppreciationText,
		AdviceText:       letter.AdviceText,
		IsRead:           letter.IsRead,
		IsAcknowledged:   letter.IsAcknowledged,
		CreatedAt:        letter.CreatedAt,
	}
}
