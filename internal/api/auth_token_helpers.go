package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/verdantlab/sacredgarden/internal/models"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return nil, errors.New("missing bearer token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account is inactive")
	}
	return &user, nil
}
