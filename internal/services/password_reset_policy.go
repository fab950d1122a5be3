package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const passwordResetTokenPurpose = "password_reset"

var (
	ErrPasswordResetTokenMissing = errors.New("missing reset token")
	ErrPasswordResetTokenInvalid = errors.New("invalid reset token")
	ErrPasswordResetTokenExpired = errors.New("expired reset token")
)

// PasswordResetClaims bind a reset token to one user and to the password
// state it was issued against, so a token stops working once the password
// changes.
type PasswordResetClaims struct {
	UserID        uint   `json:"uid"`
	Purpose       string `json:"purpose"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

func BuildPasswordResetToken(secretKey []byte, userID uint, passwordHash string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := PasswordResetClaims{
		UserID:        userID,
		Purpose:       passwordResetTokenPurpose,
		PasswordState: passwordStateFingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParsePasswordResetToken(secretKey []byte, rawToken string, now time.Time) (*PasswordResetClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrPasswordResetTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &PasswordResetClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrPasswordResetTokenInvalid
	}
	if claims.Purpose != passwordResetTokenPurpose {
		return nil, ErrPasswordResetTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, ErrPasswordResetTokenExpired
	}
	if claims.UserID == 0 {
		return nil, ErrPasswordResetTokenInvalid
	}
	return claims, nil
}

// IsPasswordStateMatch reports whether the token was issued against the
// user's current password hash.
func IsPasswordStateMatch(claims *PasswordResetClaims, passwordHash string) bool {
	expected := strings.TrimSpace(claims.PasswordState)
	actual := passwordStateFingerprint(passwordHash)
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

func passwordStateFingerprint(passwordHash string) string {
	normalizedHash := strings.TrimSpace(passwordHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("sacredgarden.reset.password-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
