package db

import (
	"github.com/verdantlab/sacredgarden/internal/models"
	"gorm.io/gorm"
)

type NeedRepository struct {
	database *gorm.DB
}

func NewNeedRepository(database *gorm.DB) *NeedRepository {
	return &NeedRepository{database: database}
}

func (repo *NeedRepository) Create(need *models.EmotionalNeed) error {
	return repo.database.Create(need).Error
}

func (repo *NeedRepository) FindByID(needID uint) (models.EmotionalNeed, error) {
	var need models.EmotionalNeed
	if err := repo.database.First(&need, needID).Error; err != nil {
		return models.EmotionalNeed{}, err
	}
	return need, nil
}

func (repo *NeedRepository) ListByUser(userID uint) ([]models.EmotionalNeed, error) {
	needs := make([]models.EmotionalNeed, 0)
	if err := repo.database.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").Find(&needs).Error; err != nil {
		return nil, err
	}
	return needs, nil
}

// CreateStateTransition flips the need's previous current row off and
// inserts the new row as current, inside one transaction so there is never
// a window with zero or two current rows.
func (repo *NeedRepository) CreateStateTransition(state *models.EmotionalNeedState) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmotionalNeedState{}).
			Where("emotional_need_id = ? AND is_current = ?", state.EmotionalNeedID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		state.IsCurrent = true
		return tx.Create(state).Error
	})
}

func (repo *NeedRepository) FindCurrentState(needID uint) (models.EmotionalNeedState, error) {
	var state models.EmotionalNeedState
	if err := repo.database.
		Where("emotional_need_id = ? AND is_current = ?", needID, true).
		First(&state).Error; err != nil {
		return models.EmotionalNeedState{}, err
	}
	return state, nil
}

// ListCurrentStates bulk-loads the current rows for a set of needs in one
// query, for the batch-prefetch pattern used by the "me" payload.
func (repo *NeedRepository) ListCurrentStates(needIDs []uint) ([]models.EmotionalNeedState, error) {
	states := make([]models.EmotionalNeedState, 0)
	if len(needIDs) == 0 {
		return states, nil
	}
	if err := repo.database.
		Where("emotional_need_id IN (?) AND is_current = ?", needIDs, true).
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (repo *NeedRepository) ListHistory(needID uint) ([]models.EmotionalNeedState, error) {
	states := make([]models.EmotionalNeedState, 0)
	if err := repo.database.
		Where("emotional_need_id = ?", needID).
		Order("created_at ASC, id ASC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// ListHistoryForPartner returns only the rows created while the partner
// link existed and pointed at the given partner.
func (repo *NeedRepository) ListHistoryForPartner(needID uint, partnerID uint) ([]models.EmotionalNeedState, error) {
	states := make([]models.EmotionalNeedState, 0)
	if err := repo.database.
		Where("emotional_need_id = ? AND partner_user_id = ?", needID, partnerID).
		Order("created_at ASC, id ASC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (repo *NeedRepository) FindStateByID(stateID uint) (models.EmotionalNeedState, error) {
	var state models.EmotionalNeedState
	if err := repo.database.First(&state, stateID).Error; err != nil {
		return models.EmotionalNeedState{}, err
	}
	return state, nil
}

func (repo *NeedRepository) UpdateStateTexts(stateID uint, status models.Status, text string, appreciationText string) error {
	return repo.database.Model(&models.EmotionalNeedState{}).Where("id = ?", stateID).
		Updates(map[string]any{
			"status":            status,
			"text":              text,
			"appreciation_text": appreciationText,
		}).Error
}

func (repo *NeedRepository) DeleteState(stateID uint) error {
	return repo.database.Delete(&models.EmotionalNeedState{}, stateID).Error
}

func (repo *NeedRepository) DeleteNeed(needID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("emotional_need_id = ?", needID).
			Delete(&models.EmotionalNeedState{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EmotionalNeed{}, needID).Error
	})
}

// ListAppreciationStatesForPartner returns states on other users' needs
// that were pointed at the given user and carry appreciation text.
func (repo *NeedRepository) ListAppreciationStatesForPartner(partnerID uint) ([]models.EmotionalNeedState, error) {
	states := make([]models.EmotionalNeedState, 0)
	if err := repo.database.
		Where("partner_user_id = ? AND appreciation_text <> ''", partnerID).
		Order("created_at DESC, id DESC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// DeleteSampleNeeds removes a user's demo needs together with their
// history.
func (repo *NeedRepository) DeleteSampleNeeds(userID uint) error {
	return repo.deleteNeedsWhere("user_id = ? AND is_sample = ?", userID, true)
}

// DeleteSampleUserNeedsForPartner removes the needs seeded on the sample
// account for one particular real user.
func (repo *NeedRepository) DeleteSampleUserNeedsForPartner(sampleUserID uint, partnerID uint) error {
	return repo.deleteNeedsWhere("user_id = ? AND sample_user_partner_id = ?", sampleUserID, partnerID)
}

func (repo *NeedRepository) deleteNeedsWhere(condition string, args ...any) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		needIDs := tx.Model(&models.EmotionalNeed{}).Select("id").Where(condition, args...)
		if err := tx.Where("emotional_need_id IN (?)", needIDs).
			Delete(&models.EmotionalNeedState{}).Error; err != nil {
			return err
		}
		return tx.Where(condition, args...).Delete(&models.EmotionalNeed{}).Error
	})
}
