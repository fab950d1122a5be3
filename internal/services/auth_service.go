package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/verdantlab/sacredgarden/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	UpdateByID(userID uint, updates map[string]any) error
	UpdatePassword(userID uint, passwordHash string) error
}

// AuthService owns credential checks, invite-gated registration, and the
// password-reset flow. Token issuance for sessions lives in the api layer.
type AuthService struct {
	users         AuthUserRepository
	secretKey     []byte
	resetTokenTTL time.Duration
	baseURL       string
	mailer        Mailer
}

func NewAuthService(users AuthUserRepository, secretKey []byte, resetTokenTTL time.Duration, baseURL string, mailer Mailer) *AuthService {
	return &AuthService{
		users:         users,
		secretKey:     secretKey,
		resetTokenTTL: resetTokenTTL,
		baseURL:       strings.TrimRight(baseURL, "/"),
		mailer:        mailer,
	}
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, notFoundAs(err, ErrNotFound)
	}
	return user, nil
}

// Authenticate verifies an email/password pair. Every failure mode maps to
// the same error so callers cannot probe which emails exist.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive || user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// CheckUser reports whether an account exists for the email and, when it
// does, whether that account has been invited to the platform.
func (service *AuthService) CheckUser(emailRaw string) (bool, *bool, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return false, nil, ErrValidation
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if isRecordNotFound(err) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, &user.IsInvited, nil
}

// Register lets a pre-created, invited user claim their account: unknown
// email is NotFound, a missing invitation or wrong platform code is
// Forbidden.
func (service *AuthService) Register(emailRaw string, firstName string, password string, inviteCode string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrValidation
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, notFoundAs(err, ErrNotFound)
	}

	if !user.IsInvited {
		return models.User{}, ErrNotInvited
	}
	if user.InviteCode == nil || *user.InviteCode != inviteCode {
		return models.User{}, ErrWrongPlatformCode
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	if err := service.users.UpdateByID(user.ID, map[string]any{
		"password_hash": string(hash),
		"first_name":    strings.TrimSpace(firstName),
		"is_active":     true,
	}); err != nil {
		return models.User{}, err
	}

	return service.FindByID(user.ID)
}

// ForgotPassword emails a reset link when the account exists. It reports
// success either way, and mail failure is logged but never surfaced.
func (service *AuthService) ForgotPassword(emailRaw string) error {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return ErrValidation
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if isRecordNotFound(err) {
			return nil
		}
		return err
	}

	token, err := BuildPasswordResetToken(service.secretKey, user.ID, user.PasswordHash, service.resetTokenTTL, time.Now())
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?%s", service.baseURL, url.Values{"token": {token}}.Encode())
	if mailErr := service.mailer.Send(
		user.Email,
		"Sacred Garden: Account password reset",
		"Click the following link to reset your password: "+link,
	); mailErr != nil {
		log.Printf("password reset email to %s failed: %v", user.Email, mailErr)
	}
	return nil
}

// ResetPassword exchanges a valid, unexpired reset token for a new
// password. Tokens issued before the last password change are rejected.
func (service *AuthService) ResetPassword(rawToken string, newPassword string) error {
	claims, err := ParsePasswordResetToken(service.secretKey, rawToken, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := service.users.FindByID(claims.UserID)
	if err != nil {
		return notFoundAs(err, ErrNotFound)
	}
	if !IsPasswordStateMatch(claims, user.PasswordHash) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrPasswordResetTokenInvalid)
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(user.ID, string(hash))
}
