package db

import (
	"github.com/verdantlab/sacredgarden/internal/models"
	"gorm.io/gorm"
)

type LetterRepository struct {
	database *gorm.DB
}

func NewLetterRepository(database *gorm.DB) *LetterRepository {
	return &LetterRepository{database: database}
}

func (repo *LetterRepository) Create(letter *models.EmotionalLetter) error {
	return repo.database.Create(letter).Error
}

func (repo *LetterRepository) FindByID(letterID uint) (models.EmotionalLetter, error) {
	var letter models.EmotionalLetter
	if err := repo.database.First(&letter, letterID).Error; err != nil {
		return models.EmotionalLetter{}, err
	}
	return letter, nil
}

func (repo *LetterRepository) ListForUser(userID uint) ([]models.EmotionalLetter, error) {
	letters := make([]models.EmotionalLetter, 0)
	if err := repo.database.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}

func (repo *LetterRepository) UpdateTexts(letterID uint, text string, appreciationText string, adviceText string) error {
	return repo.database.Model(&models.EmotionalLetter{}).Where("id = ?", letterID).
		Updates(map[string]any{
			"text":              text,
			"appreciation_text": appreciationText,
			"advice_text":       adviceText,
		}).Error
}

func (repo *LetterRepository) MarkRead(letterID uint) error {
	return repo.database.Model(&models.EmotionalLetter{}).Where("id = ?", letterID).
		Update("is_read", true).Error
}

func (repo *LetterRepository) MarkAcknowledged(letterID uint) error {
	return repo.database.Model(&models.EmotionalLetter{}).Where("id = ?", letterID).
		Update("is_acknowledged", true).Error
}

func (repo *LetterRepository) Delete(letterID uint) error {
	return repo.database.Delete(&models.EmotionalLetter{}, letterID).Error
}

func (repo *LetterRepository) CountUnread(senderID uint, recipientID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.EmotionalLetter{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *LetterRepository) ListAppreciationForRecipient(recipientID uint) ([]models.EmotionalLetter, error) {
	letters := make([]models.EmotionalLetter, 0)
	if err := repo.database.
		Where("recipient_id = ? AND appreciation_text <> ''", recipientID).
		Order("created_at DESC, id DESC").
		Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}

// DeleteBetween removes every letter exchanged in one direction, used by
// the sample-data cleanup.
func (repo *LetterRepository) DeleteBetween(senderID uint, recipientID uint) error {
	return repo.database.
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Delete(&models.EmotionalLetter{}).Error
}
