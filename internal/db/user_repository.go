package db

import (
	"github.com/verdantlab/sacredgarden/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) FindByPartnerInviteCode(code string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("partner_invite_code = ?", code).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindSampleUser() (models.User, error) {
	var user models.User
	if err := repo.database.Where("is_sample = ?", true).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

// ConnectPartners links both users and clears their partner invite codes in
// one transaction, then re-points the current need-state rows of each
// user's needs at the new partner. Historical (non-current) rows keep the
// snapshot they were created with.
func (repo *UserRepository) ConnectPartners(userAID uint, userBID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := linkPartner(tx, userAID, userBID); err != nil {
			return err
		}
		if err := linkPartner(tx, userBID, userAID); err != nil {
			return err
		}
		if err := repointCurrentStates(tx, userAID, userBID); err != nil {
			return err
		}
		return repointCurrentStates(tx, userBID, userAID)
	})
}

func linkPartner(tx *gorm.DB, userID uint, partnerID uint) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"partner_user_id":     partnerID,
		"partner_invite_code": nil,
	}).Error
}

func repointCurrentStates(tx *gorm.DB, ownerID uint, partnerID uint) error {
	ownedNeedIDs := tx.Model(&models.EmotionalNeed{}).Select("id").Where("user_id = ?", ownerID)
	return tx.Model(&models.EmotionalNeedState{}).
		Where("is_current = ? AND emotional_need_id IN (?)", true, ownedNeedIDs).
		Update("partner_user_id", partnerID).Error
}

// DisconnectPartners clears the symmetric link and installs the freshly
// generated partner invite codes, atomically for both sides.
func (repo *UserRepository) DisconnectPartners(userID uint, partnerID uint, userCode string, partnerCode string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := unlinkPartner(tx, userID, userCode); err != nil {
			return err
		}
		return unlinkPartner(tx, partnerID, partnerCode)
	})
}

func unlinkPartner(tx *gorm.DB, userID uint, inviteCode string) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"partner_user_id":     nil,
		"partner_invite_code": inviteCode,
	}).Error
}

func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		ownedNeedIDs := tx.Model(&models.EmotionalNeed{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("emotional_need_id IN (?)", ownedNeedIDs).
			Delete(&models.EmotionalNeedState{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.EmotionalNeed{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR recipient_id = ?", userID, userID).
			Delete(&models.EmotionalLetter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
