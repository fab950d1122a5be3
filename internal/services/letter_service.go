package services

import (
	"sort"
	"strings"
	"time"

	"github.com/verdantlab/sacredgarden/internal/models"
)

type LetterExchangeRepository interface {
	Create(letter *models.EmotionalLetter) error
	FindByID(letterID uint) (models.EmotionalLetter, error)
	ListForUser(userID uint) ([]models.EmotionalLetter, error)
	UpdateTexts(letterID uint, text string, appreciationText string, adviceText string) error
	MarkRead(letterID uint) error
	MarkAcknowledged(letterID uint) error
	Delete(letterID uint) error
	CountUnread(senderID uint, recipientID uint) (int64, error)
	ListAppreciationForRecipient(recipientID uint) ([]models.EmotionalLetter, error)
}

type AppreciationStateRepository interface {
	ListAppreciationStatesForPartner(partnerID uint) ([]models.EmotionalNeedState, error)
}

// LetterService owns the structured letters exchanged between partners.
type LetterService struct {
	letters LetterExchangeRepository
	needs   AppreciationStateRepository
}

func NewLetterService(letters LetterExchangeRepository, needs AppreciationStateRepository) *LetterService {
	return &LetterService{letters: letters, needs: needs}
}

// Send creates a letter from the user to their partner. The recipient is
// always the current partner; without one the operation is a validation
// failure.
func (service *LetterService) Send(sender *models.User, text string, appreciationText string, adviceText string) (models.EmotionalLetter, error) {
	if !sender.HasPartner() {
		return models.EmotionalLetter{}, ErrPartnerRequired
	}
	if strings.TrimSpace(text) == "" {
		return models.EmotionalLetter{}, ErrValidation
	}

	letter := models.EmotionalLetter{
		SenderID:         sender.ID,
		RecipientID:      *sender.PartnerUserID,
		Text:             text,
		AppreciationText: appreciationText,
		AdviceText:       adviceText,
	}
	if err := service.letters.Create(&letter); err != nil {
		return models.EmotionalLetter{}, err
	}
	return letter, nil
}

// ListFor returns every letter the user sent or received, newest first.
func (service *LetterService) ListFor(user *models.User) ([]models.EmotionalLetter, error) {
	return service.letters.ListForUser(user.ID)
}

func (service *LetterService) Get(actingUser *models.User, letterID uint) (models.EmotionalLetter, error) {
	letter, err := service.letters.FindByID(letterID)
	if err != nil {
		return models.EmotionalLetter{}, notFoundAs(err, ErrNotFound)
	}
	if !CanViewLetter(actingUser, &letter) {
		return models.EmotionalLetter{}, ErrForbidden
	}
	return letter, nil
}

func (service *LetterService) Update(actingUser *models.User, letterID uint, text string, appreciationText string, adviceText string) (models.EmotionalLetter, error) {
	letter, err := service.Get(actingUser, letterID)
	if err != nil {
		return models.EmotionalLetter{}, err
	}
	if !CanMutateLetter(actingUser, &letter) {
		return models.EmotionalLetter{}, ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return models.EmotionalLetter{}, ErrValidation
	}

	if err := service.letters.UpdateTexts(letter.ID, text, appreciationText, adviceText); err != nil {
		return models.EmotionalLetter{}, err
	}
	letter.Text = text
	letter.AppreciationText = appreciationText
	letter.AdviceText = adviceText
	return letter, nil
}

func (service *LetterService) Delete(actingUser *models.User, letterID uint) error {
	letter, err := service.Get(actingUser, letterID)
	if err != nil {
		return err
	}
	if !CanMutateLetter(actingUser, &letter) {
		return ErrForbidden
	}
	return service.letters.Delete(letter.ID)
}

// MarkRead flips the read flag, idempotently and one-way.
func (service *LetterService) MarkRead(actingUser *models.User, letterID uint) error {
	letter, err := service.Get(actingUser, letterID)
	if err != nil {
		return err
	}
	if !CanFlagLetter(actingUser, &letter) {
		return ErrForbidden
	}
	return service.letters.MarkRead(letter.ID)
}

// MarkAcknowledged flips the acknowledged flag, idempotently and one-way.
func (service *LetterService) MarkAcknowledged(actingUser *models.User, letterID uint) error {
	letter, err := service.Get(actingUser, letterID)
	if err != nil {
		return err
	}
	if !CanFlagLetter(actingUser, &letter) {
		return ErrForbidden
	}
	return service.letters.MarkAcknowledged(letter.ID)
}

// UnreadCount counts unread letters from the user's partner; a user
// without a partner has none by definition.
func (service *LetterService) UnreadCount(user *models.User) (int64, error) {
	if !user.HasPartner() {
		return 0, nil
	}
	return service.letters.CountUnread(*user.PartnerUserID, user.ID)
}

const (
	AppreciationSourceLetter    = "emotional_letter"
	AppreciationSourceNeedState = "emotional_need_state"
)

// AppreciationEntry is one item of the merged appreciation feed.
type AppreciationEntry struct {
	ID               uint
	SourceEntity     string
	AppreciationText string
	CreatedAt        time.Time
	EmotionalNeedID  *uint
}

// AppreciationFeed merges letters addressed to the user and partner
// need-states pointed at the user, keeping only entries that carry
// appreciation text, newest first.
func (service *LetterService) AppreciationFeed(user *models.User) ([]AppreciationEntry, error) {
	letters, err := service.letters.ListAppreciationForRecipient(user.ID)
	if err != nil {
		return nil, err
	}
	states, err := service.needs.ListAppreciationStatesForPartner(user.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]AppreciationEntry, 0, len(letters)+len(states))
	for _, letter := range letters {
		entries = append(entries, AppreciationEntry{
			ID:               letter.ID,
			SourceEntity:     AppreciationSourceLetter,
			AppreciationText: letter.AppreciationText,
			CreatedAt:        letter.CreatedAt,
		})
	}
	for _, state := range states {
		needID := state.EmotionalNeedID
		entries = append(entries, AppreciationEntry{
			ID:               state.ID,
			SourceEntity:     AppreciationSourceNeedState,
			AppreciationText: state.AppreciationText,
			CreatedAt:        state.CreatedAt,
			EmotionalNeedID:  &needID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
