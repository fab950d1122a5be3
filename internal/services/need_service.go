package services

import (
	"github.com/verdantlab/sacredgarden/internal/models"
)

type NeedHistoryRepository interface {
	Create(need *models.EmotionalNeed) error
	FindByID(needID uint) (models.EmotionalNeed, error)
	ListByUser(userID uint) ([]models.EmotionalNeed, error)
	CreateStateTransition(state *models.EmotionalNeedState) error
	FindCurrentState(needID uint) (models.EmotionalNeedState, error)
	ListCurrentStates(needIDs []uint) ([]models.EmotionalNeedState, error)
	ListHistory(needID uint) ([]models.EmotionalNeedState, error)
	ListHistoryForPartner(needID uint, partnerID uint) ([]models.EmotionalNeedState, error)
	FindStateByID(stateID uint) (models.EmotionalNeedState, error)
	UpdateStateTexts(stateID uint, status models.Status, text string, appreciationText string) error
	DeleteState(stateID uint) error
	DeleteNeed(needID uint) error
}

type NeedUserFinder interface {
	FindByID(userID uint) (models.User, error)
}

// NeedService owns emotional needs and their append-only state history.
type NeedService struct {
	needs NeedHistoryRepository
	users NeedUserFinder
}

func NewNeedService(needs NeedHistoryRepository, users NeedUserFinder) *NeedService {
	return &NeedService{needs: needs, users: users}
}

// StateTransitionInput carries the caller-supplied fields of a new state.
// Exactly one of ValueAbs/ValueRel is expected, matching the need's value
// type; both nil marks a value-less initial state.
type StateTransitionInput struct {
	Status           models.Status
	ValueAbs         *int
	ValueRel         *models.Trend
	Text             string
	AppreciationText string
}

// ValidateStateValue enforces the tag-to-payload contract at the input
// boundary: the populated value field must match the need's value type.
func ValidateStateValue(valueType models.ValueType, input StateTransitionInput) error {
	if input.ValueAbs != nil && input.ValueRel != nil {
		return ErrValidation
	}
	if input.ValueAbs != nil && valueType != models.ValueTypeAbsolute {
		return ErrValidation
	}
	if input.ValueRel != nil {
		if valueType != models.ValueTypeRelative || !input.ValueRel.Valid() {
			return ErrValidation
		}
	}
	return nil
}

func (service *NeedService) CreateNeed(owner *models.User, name string, valueType models.ValueType, initialStatus *models.Status) (models.EmotionalNeed, error) {
	if name == "" || !valueType.Valid() {
		return models.EmotionalNeed{}, ErrValidation
	}

	need := models.EmotionalNeed{
		UserID:         owner.ID,
		Name:           name,
		StateValueType: valueType,
	}
	if err := service.needs.Create(&need); err != nil {
		return models.EmotionalNeed{}, err
	}

	if initialStatus != nil {
		if _, err := service.CreateStateTransition(owner, need.ID, StateTransitionInput{
			Status: *initialStatus,
		}); err != nil {
			return models.EmotionalNeed{}, err
		}
	}
	return need, nil
}

func (service *NeedService) FindNeed(needID uint) (models.EmotionalNeed, error) {
	need, err := service.needs.FindByID(needID)
	if err != nil {
		return models.EmotionalNeed{}, notFoundAs(err, ErrNotFound)
	}
	return need, nil
}

// CreateStateTransition appends a new history row for the need and makes
// it current. The value type is copied from the need and the acting
// user's partner is snapshotted, so later pairing changes do not rewrite
// what this row meant when it was created.
func (service *NeedService) CreateStateTransition(actingUser *models.User, needID uint, input StateTransitionInput) (models.EmotionalNeedState, error) {
	need, err := service.FindNeed(needID)
	if err != nil {
		return models.EmotionalNeedState{}, err
	}
	if !CanMutateNeedState(actingUser, &need) {
		return models.EmotionalNeedState{}, ErrForbidden
	}
	if !input.Status.Valid() {
		return models.EmotionalNeedState{}, ErrValidation
	}

	state := models.EmotionalNeedState{
		EmotionalNeedID:  need.ID,
		Status:           input.Status,
		ValueType:        need.StateValueType,
		ValueAbs:         input.ValueAbs,
		ValueRel:         input.ValueRel,
		PartnerUserID:    actingUser.PartnerUserID,
		Text:             input.Text,
		AppreciationText: input.AppreciationText,
	}
	if err := service.needs.CreateStateTransition(&state); err != nil {
		return models.EmotionalNeedState{}, err
	}
	return state, nil
}

// NeedWithCurrentState pairs a need with its prefetched current row.
// CurrentState is nil for a need that has no transitions yet.
type NeedWithCurrentState struct {
	Need         models.EmotionalNeed
	CurrentState *models.EmotionalNeedState
}

// ListWithCurrentStates loads a user's needs and their current rows in a
// bounded number of queries.
func (service *NeedService) ListWithCurrentStates(userID uint) ([]NeedWithCurrentState, error) {
	needs, err := service.needs.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	needIDs := make([]uint, 0, len(needs))
	for _, need := range needs {
		needIDs = append(needIDs, need.ID)
	}

	currents, err := service.needs.ListCurrentStates(needIDs)
	if err != nil {
		return nil, err
	}
	currentByNeed := make(map[uint]models.EmotionalNeedState, len(currents))
	for _, state := range currents {
		currentByNeed[state.EmotionalNeedID] = state
	}

	result := make([]NeedWithCurrentState, 0, len(needs))
	for _, need := range needs {
		entry := NeedWithCurrentState{Need: need}
		if state, ok := currentByNeed[need.ID]; ok {
			stateCopy := state
			entry.CurrentState = &stateCopy
		}
		result = append(result, entry)
	}
	return result, nil
}

// CurrentState returns the single current row of the need, or ErrNotFound
// when the need has no transitions yet.
func (service *NeedService) CurrentState(needID uint) (models.EmotionalNeedState, error) {
	state, err := service.needs.FindCurrentState(needID)
	if err != nil {
		return models.EmotionalNeedState{}, notFoundAs(err, ErrNotFound)
	}
	return state, nil
}

// History returns the need's state rows ascending by creation time. The
// owner sees everything; the owner's partner sees only rows snapshotted
// at them (rows from before the partnership are excluded).
func (service *NeedService) History(actingUser *models.User, needID uint) ([]models.EmotionalNeedState, error) {
	need, err := service.FindNeed(needID)
	if err != nil {
		return nil, err
	}

	if need.UserID == actingUser.ID {
		return service.needs.ListHistory(need.ID)
	}

	owner, err := service.users.FindByID(need.UserID)
	if err != nil {
		return nil, notFoundAs(err, ErrNotFound)
	}
	if !CanViewNeed(actingUser, &owner) {
		return nil, ErrForbidden
	}
	return service.needs.ListHistoryForPartner(need.ID, actingUser.ID)
}

// StateProjection is a history row plus the display value derived for it.
type StateProjection struct {
	State        models.EmotionalNeedState
	DisplayedAbs *int
}

// DeriveRunningAbsolute computes the read-time display values for a
// history: absolute rows show their stored value verbatim, relative rows
// show a running sum of deltas seeded at 0. Value-less initial rows have
// no display value.
func DeriveRunningAbsolute(states []models.EmotionalNeedState) []StateProjection {
	projections := make([]StateProjection, 0, len(states))
	running := 0
	for _, state := range states {
		projection := StateProjection{State: state}
		switch {
		case state.ValueType == models.ValueTypeAbsolute:
			if state.ValueAbs != nil {
				value := *state.ValueAbs
				projection.DisplayedAbs = &value
			}
		case state.ValueRel != nil:
			running += int(*state.ValueRel)
			value := running
			projection.DisplayedAbs = &value
		}
		projections = append(projections, projection)
	}
	return projections
}

func (service *NeedService) findOwnedState(actingUser *models.User, stateID uint) (models.EmotionalNeedState, error) {
	state, err := service.needs.FindStateByID(stateID)
	if err != nil {
		return models.EmotionalNeedState{}, notFoundAs(err, ErrNotFound)
	}
	need, err := service.FindNeed(state.EmotionalNeedID)
	if err != nil {
		return models.EmotionalNeedState{}, err
	}
	if !CanMutateNeedState(actingUser, &need) {
		return models.EmotionalNeedState{}, ErrForbidden
	}
	return state, nil
}

// UpdateState lets the owner amend the textual fields of a history row.
// Values and the current flag are never rewritten.
func (service *NeedService) UpdateState(actingUser *models.User, stateID uint, status models.Status, text string, appreciationText string) (models.EmotionalNeedState, error) {
	state, err := service.findOwnedState(actingUser, stateID)
	if err != nil {
		return models.EmotionalNeedState{}, err
	}
	if !status.Valid() {
		return models.EmotionalNeedState{}, ErrValidation
	}

	if err := service.needs.UpdateStateTexts(state.ID, status, text, appreciationText); err != nil {
		return models.EmotionalNeedState{}, err
	}
	state.Status = status
	state.Text = text
	state.AppreciationText = appreciationText
	return state, nil
}

// DeleteState removes a history row. Deleting the current row leaves the
// need without a current state until the next transition.
func (service *NeedService) DeleteState(actingUser *models.User, stateID uint) error {
	state, err := service.findOwnedState(actingUser, stateID)
	if err != nil {
		return err
	}
	return service.needs.DeleteState(state.ID)
}

func (service *NeedService) DeleteNeed(actingUser *models.User, needID uint) error {
	need, err := service.FindNeed(needID)
	if err != nil {
		return err
	}
	if !CanMutateNeed(actingUser, &need) {
		return ErrForbidden
	}
	return service.needs.DeleteNeed(need.ID)
}
