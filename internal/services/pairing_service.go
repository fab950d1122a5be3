package services

import (
	"log"

	"github.com/verdantlab/sacredgarden/internal/models"
	"github.com/verdantlab/sacredgarden/internal/security"
)

// maxInviteCodeAttempts bounds the regenerate-and-retry loop used when a
// freshly generated code collides with the unique storage constraint.
const maxInviteCodeAttempts = 5

type PairingUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByPartnerInviteCode(code string) (models.User, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
	ConnectPartners(userAID uint, userBID uint) error
	DisconnectPartners(userID uint, partnerID uint, userCode string, partnerCode string) error
}

// PairingService owns user creation, invite codes, and the symmetric
// partner link.
type PairingService struct {
	users              PairingUserRepository
	partnerCodeLength  int
	platformCodeLength int
	mailer             Mailer
}

func NewPairingService(users PairingUserRepository, partnerCodeLength int, platformCodeLength int, mailer Mailer) *PairingService {
	return &PairingService{
		users:              users,
		partnerCodeLength:  partnerCodeLength,
		platformCodeLength: platformCodeLength,
		mailer:             mailer,
	}
}

// CreateUser inserts the user, generating a partner invite code when the
// caller did not supply one. The generated code is part of the insert
// itself, so it is always present in the first read.
func (service *PairingService) CreateUser(user *models.User) error {
	user.Email = NormalizeAuthEmail(user.Email)
	if user.Email == "" {
		return ErrValidation
	}

	if user.PartnerInviteCode != nil {
		return service.users.Create(user)
	}

	var err error
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		var code string
		code, err = security.InviteCode(service.partnerCodeLength)
		if err != nil {
			return err
		}
		user.PartnerInviteCode = &code

		err = service.users.Create(user)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	return err
}

func (service *PairingService) FindByPartnerInviteCode(code string) (models.User, error) {
	user, err := service.users.FindByPartnerInviteCode(code)
	if err != nil {
		return models.User{}, notFoundAs(err, ErrInvalidInviteCode)
	}
	return user, nil
}

// ConnectPartners pairs the user with the owner of the given invite code.
// Both link writes, both code clears, and the re-pointing of current
// need-state rows happen in one storage transaction.
func (service *PairingService) ConnectPartners(user *models.User, inviteCode string) (models.User, error) {
	partner, err := service.FindByPartnerInviteCode(inviteCode)
	if err != nil {
		return models.User{}, err
	}

	if partner.ID == user.ID {
		return models.User{}, ErrSelfPairing
	}
	if user.HasPartner() || partner.HasPartner() {
		return models.User{}, ErrAlreadyPaired
	}

	if err := service.users.ConnectPartners(user.ID, partner.ID); err != nil {
		return models.User{}, err
	}
	return partner, nil
}

// DisconnectPartner severs the link on both sides and installs fresh,
// mutually distinct partner invite codes.
func (service *PairingService) DisconnectPartner(user *models.User) error {
	if !user.HasPartner() {
		return ErrNoPartner
	}
	partnerID := *user.PartnerUserID

	var err error
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		var userCode, partnerCode string
		userCode, partnerCode, err = service.newDistinctCodePair()
		if err != nil {
			return err
		}

		err = service.users.DisconnectPartners(user.ID, partnerID, userCode, partnerCode)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	return err
}

func (service *PairingService) newDistinctCodePair() (string, string, error) {
	userCode, err := security.InviteCode(service.partnerCodeLength)
	if err != nil {
		return "", "", err
	}
	for {
		partnerCode, err := security.InviteCode(service.partnerCodeLength)
		if err != nil {
			return "", "", err
		}
		if partnerCode != userCode {
			return userCode, partnerCode, nil
		}
	}
}

// InviteUser marks the user as invited to the platform and issues the
// long-form invite code, emailing it best effort.
func (service *PairingService) InviteUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, notFoundAs(err, ErrNotFound)
	}

	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		var code string
		code, err = security.InviteCode(service.platformCodeLength)
		if err != nil {
			return models.User{}, err
		}

		err = service.users.UpdateByID(user.ID, map[string]any{
			"is_invited":  true,
			"invite_code": code,
		})
		if err == nil {
			user.IsInvited = true
			user.InviteCode = &code
			break
		}
		if !isDuplicateKey(err) {
			return models.User{}, err
		}
	}
	if err != nil {
		return models.User{}, err
	}

	if mailErr := service.mailer.Send(
		user.Email,
		"Sacred Garden: You are invited",
		"Use invite code "+*user.InviteCode+" to register your account.",
	); mailErr != nil {
		log.Printf("invite email to %s failed: %v", user.Email, mailErr)
	}

	return user, nil
}
