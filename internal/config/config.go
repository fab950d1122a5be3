package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Invites  InviteConfig   `mapstructure:"invites"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Sample   SampleConfig   `mapstructure:"sample"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"     validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type AuthConfig struct {
	SecretKey     string        `mapstructure:"secret_key"      validate:"required"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"       validate:"min=1m"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl" validate:"min=1m"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type InviteConfig struct {
	PartnerCodeLength  int `mapstructure:"partner_code_length"  validate:"min=4,max=50"`
	PlatformCodeLength int `mapstructure:"platform_code_length" validate:"min=16,max=64"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	From     string `mapstructure:"from"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type SampleConfig struct {
	UserEmail string `mapstructure:"user_email" validate:"omitempty,email"`
}

// Enabled reports whether outbound mail is configured at all; without a
// host the mailer degrades to a no-op.
func (smtp SMTPConfig) Enabled() bool {
	return strings.TrimSpace(smtp.Host) != ""
}

// Load reads configuration from defaults, an optional config.yaml, and
// SACREDGARDEN_* environment variables, then validates the result.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SACREDGARDEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")

	viper.SetDefault("auth.secret_key", "change_me_in_production")
	viper.SetDefault("auth.token_ttl", 7*24*time.Hour)
	viper.SetDefault("auth.reset_token_ttl", time.Hour)

	viper.SetDefault("database.path", "data/sacredgarden.db")

	viper.SetDefault("invites.partner_code_length", 6)
	viper.SetDefault("invites.platform_code_length", 50)

	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.from", "noreply@sacredgarden.local")

	viper.SetDefault("sample.user_email", "sample@sacredgarden.local")
}
