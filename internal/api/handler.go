package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/verdantlab/sacredgarden/internal/config"
	"github.com/verdantlab/sacredgarden/internal/db"
	"github.com/verdantlab/sacredgarden/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db        *gorm.DB
	secretKey []byte
	tokenTTL  time.Duration
	validate  *validator.Validate

	repositories   *db.Repositories
	authService    *services.AuthService
	pairingService *services.PairingService
	needService    *services.NeedService
	letterService  *services.LetterService
	sampleService  *services.SampleDataService
}

func NewHandler(database *gorm.DB, cfg *config.Config) *Handler {
	repositories := db.NewRepositories(database)

	var mailer services.Mailer = services.NoopMailer{}
	if cfg.SMTP.Enabled() {
		mailer = services.NewSMTPMailer(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.From,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
		)
	}

	secretKey := []byte(cfg.Auth.SecretKey)
	pairingService := services.NewPairingService(
		repositories.Users,
		cfg.Invites.PartnerCodeLength,
		cfg.Invites.PlatformCodeLength,
		mailer,
	)

	return &Handler{
		db:             database,
		secretKey:      secretKey,
		tokenTTL:       cfg.Auth.TokenTTL,
		validate:       validator.New(),
		repositories:   repositories,
		authService:    services.NewAuthService(repositories.Users, secretKey, cfg.Auth.ResetTokenTTL, cfg.Server.BaseURL, mailer),
		pairingService: pairingService,
		needService:    services.NewNeedService(repositories.Needs, repositories.Users),
		letterService:  services.NewLetterService(repositories.Letters, repositories.Needs),
		sampleService:  services.NewSampleDataService(repositories.Users, repositories.Needs, repositories.Letters, pairingService, cfg.Invites.PartnerCodeLength),
	}
}

// SampleDataService exposes the seeding service for boot-time setup.
func (handler *Handler) SampleDataService() *services.SampleDataService {
	return handler.sampleService
}
