package services

import (
	"time"

	"github.com/verdantlab/sacredgarden/internal/models"
	"github.com/verdantlab/sacredgarden/internal/security"
)

type SampleUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindSampleUser() (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type SampleNeedRepository interface {
	Create(need *models.EmotionalNeed) error
	CreateStateTransition(state *models.EmotionalNeedState) error
	DeleteSampleNeeds(userID uint) error
	DeleteSampleUserNeedsForPartner(sampleUserID uint, partnerID uint) error
}

type SampleLetterRepository interface {
	DeleteBetween(senderID uint, recipientID uint) error
}

// SampleDataService seeds and removes the demo pairing with the shared
// sample account, so a fresh user has something to look at.
type SampleDataService struct {
	users             SampleUserRepository
	needs             SampleNeedRepository
	letters           SampleLetterRepository
	pairing           *PairingService
	partnerCodeLength int
}

func NewSampleDataService(users SampleUserRepository, needs SampleNeedRepository, letters SampleLetterRepository, pairing *PairingService, partnerCodeLength int) *SampleDataService {
	return &SampleDataService{
		users:             users,
		needs:             needs,
		letters:           letters,
		pairing:           pairing,
		partnerCodeLength: partnerCodeLength,
	}
}

// EnsureSampleUser creates the shared sample account on first boot.
func (service *SampleDataService) EnsureSampleUser(email string) (models.User, error) {
	sample, err := service.users.FindSampleUser()
	if err == nil {
		return sample, nil
	}
	if !isRecordNotFound(err) {
		return models.User{}, err
	}

	sample = models.User{
		Email:     email,
		FirstName: "Sam",
		IsSample:  true,
	}
	if err := service.pairing.CreateUser(&sample); err != nil {
		return models.User{}, err
	}
	return sample, nil
}

// sampleSeedEntry is one backdated transition of the seeded histories.
type sampleSeedEntry struct {
	status models.Status
	trend  models.Trend
	day    int
}

var sampleSelfSeed = []sampleSeedEntry{
	{models.StatusBad, models.TrendPositive, 0},
	{models.StatusBad, models.TrendNeutral, 1},
	{models.StatusBad, models.TrendPositive, 3},
	{models.StatusBad, models.TrendNegative, 4},
	{models.StatusBad, models.TrendPositive, 5},
	{models.StatusGood, models.TrendPositive, 8},
	{models.StatusGood, models.TrendNeutral, 9},
	{models.StatusGood, models.TrendNegative, 10},
	{models.StatusGood, models.TrendPositive, 12},
	{models.StatusGood, models.TrendNeutral, 13},
	{models.StatusGood, models.TrendNegative, 15},
	{models.StatusBad, models.TrendNegative, 20},
	{models.StatusBad, models.TrendNegative, 21},
	{models.StatusProblem, models.TrendNegative, 22},
	{models.StatusProblem, models.TrendNeutral, 24},
	{models.StatusProblem, models.TrendNegative, 25},
}

var samplePartnerSeed = []sampleSeedEntry{
	{models.StatusProblem, models.TrendNeutral, 0},
	{models.StatusProblem, models.TrendPositive, 1},
	{models.StatusProblem, models.TrendNeutral, 2},
	{models.StatusProblem, models.TrendNegative, 4},
	{models.StatusProblem, models.TrendNegative, 5},
	{models.StatusProblem, models.TrendPositive, 6},
	{models.StatusBad, models.TrendPositive, 8},
	{models.StatusBad, models.TrendNeutral, 9},
	{models.StatusBad, models.TrendPositive, 11},
	{models.StatusBad, models.TrendNegative, 12},
	{models.StatusGood, models.TrendPositive, 15},
	{models.StatusGood, models.TrendNeutral, 16},
	{models.StatusGood, models.TrendPositive, 18},
	{models.StatusGood, models.TrendNeutral, 20},
}

// Populate links the user with the sample account (one-directionally; the
// sample account is shared between many users and never links back) and
// seeds a month of relative "Gifts" history on both sides.
func (service *SampleDataService) Populate(user *models.User) error {
	if user.HasPartner() {
		return ErrAlreadyPaired
	}

	sample, err := service.users.FindSampleUser()
	if err != nil {
		return notFoundAs(err, ErrSampleUserMissing)
	}

	userNeed := models.EmotionalNeed{
		UserID:         user.ID,
		Name:           "Gifts",
		StateValueType: models.ValueTypeRelative,
		IsSample:       true,
	}
	if err := service.needs.Create(&userNeed); err != nil {
		return err
	}

	sampleNeed := models.EmotionalNeed{
		UserID:              sample.ID,
		Name:                "Gifts",
		StateValueType:      models.ValueTypeRelative,
		IsSample:            true,
		SampleUserPartnerID: &user.ID,
	}
	if err := service.needs.Create(&sampleNeed); err != nil {
		return err
	}

	if err := service.seedHistory(userNeed.ID, sample.ID, sampleSelfSeed); err != nil {
		return err
	}
	if err := service.seedHistory(sampleNeed.ID, user.ID, samplePartnerSeed); err != nil {
		return err
	}

	return service.users.UpdateByID(user.ID, map[string]any{
		"partner_user_id":     sample.ID,
		"partner_invite_code": nil,
		"has_sample_data":     true,
	})
}

func (service *SampleDataService) seedHistory(needID uint, partnerID uint, seed []sampleSeedEntry) error {
	now := time.Now()
	for _, entry := range seed {
		trend := entry.trend
		state := models.EmotionalNeedState{
			EmotionalNeedID: needID,
			Status:          entry.status,
			ValueType:       models.ValueTypeRelative,
			ValueRel:        &trend,
			PartnerUserID:   &partnerID,
			CreatedAt:       now.AddDate(0, 0, entry.day-30),
		}
		if err := service.needs.CreateStateTransition(&state); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes everything Populate created and restores the user's
// partner invite code.
func (service *SampleDataService) Clean(user *models.User) error {
	sample, err := service.users.FindSampleUser()
	if err != nil {
		return notFoundAs(err, ErrSampleUserMissing)
	}

	if user.PartnerUserID != nil && *user.PartnerUserID == sample.ID {
		code, err := security.InviteCode(service.partnerCodeLength)
		if err != nil {
			return err
		}
		if err := service.users.UpdateByID(user.ID, map[string]any{
			"partner_user_id":     nil,
			"partner_invite_code": code,
		}); err != nil {
			return err
		}
	}

	if err := service.needs.DeleteSampleNeeds(user.ID); err != nil {
		return err
	}
	if err := service.needs.DeleteSampleUserNeedsForPartner(sample.ID, user.ID); err != nil {
		return err
	}
	if err := service.letters.DeleteBetween(user.ID, sample.ID); err != nil {
		return err
	}

	return service.users.UpdateByID(user.ID, map[string]any{
		"has_sample_data": false,
	})
}
