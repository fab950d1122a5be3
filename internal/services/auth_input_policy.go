package services

import (
	"net/mail"
	"strings"
)

// NormalizeAuthEmail lowercases and trims an email address, returning ""
// when it does not parse as one.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

// NormalizeCredentialsInput validates and normalizes a login payload.
func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrInvalidCredentials
	}
	return email, password, nil
}
