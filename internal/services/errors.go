package services

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every service operation fails with an error wrapping one
// of these four kinds; the api layer maps kinds to HTTP statuses.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("invalid input")
)

var (
	ErrInvalidInviteCode  = fmt.Errorf("invalid invite code: %w", ErrNotFound)
	ErrSelfPairing        = fmt.Errorf("cannot pair with self: %w", ErrConflict)
	ErrAlreadyPaired      = fmt.Errorf("user already has partner: %w", ErrConflict)
	ErrNoPartner          = fmt.Errorf("user has no partner: %w", ErrValidation)
	ErrPartnerRequired    = fmt.Errorf("partner is required: %w", ErrValidation)
	ErrNotInvited         = fmt.Errorf("user is not invited: %w", ErrForbidden)
	ErrWrongPlatformCode  = fmt.Errorf("platform invite code mismatch: %w", ErrForbidden)
	ErrSampleUserMissing  = fmt.Errorf("sample user is not configured: %w", ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// notFoundAs converts a storage-level record-not-found into the given
// taxonomy error, passing other errors through untouched.
func notFoundAs(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if isRecordNotFound(err) {
		return sentinel
	}
	return err
}
