package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/verdantlab/sacredgarden/internal/config"
	"github.com/verdantlab/sacredgarden/internal/db"
	"github.com/verdantlab/sacredgarden/internal/models"
	"github.com/verdantlab/sacredgarden/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "8080", BaseURL: "http://localhost:8080"},
		Auth:     config.AuthConfig{SecretKey: "test-secret-key", TokenTTL: time.Hour, ResetTokenTTL: time.Hour},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "sacredgarden-test.db")},
		Invites:  config.InviteConfig{PartnerCodeLength: 6, PlatformCodeLength: 50},
		Sample:   config.SampleConfig{UserEmail: "sample@sacredgarden.local"},
	}
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	cfg := testConfig(t)
	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, cfg)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

// createActiveUser inserts a registered, active account and returns it with
// a valid bearer token.
func createActiveUser(t *testing.T, handler *Handler, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := handler.pairingService.CreateUser(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}

	token, err := handler.buildToken(&user, time.Hour)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return user, token
}

func jsonRequest(t *testing.T, method string, path string, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func performJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (%s)", request.Method, request.URL.Path, wantStatus, response.StatusCode, raw)
	}
	if len(raw) == 0 {
		return nil
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload
}

func payloadNumber(t *testing.T, payload map[string]any, key string) float64 {
	t.Helper()
	value, ok := payload[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %q in %v", key, payload)
	}
	return value
}

func payloadMap(t *testing.T, payload map[string]any, key string) map[string]any {
	t.Helper()
	value, ok := payload[key].(map[string]any)
	if !ok {
		t.Fatalf("expected object %q in %v", key, payload)
	}
	return value
}

func payloadList(t *testing.T, payload map[string]any, key string) []any {
	t.Helper()
	value, ok := payload[key].([]any)
	if !ok {
		t.Fatalf("expected array %q in %v", key, payload)
	}
	return value
}

func formatID(id float64) string {
	return strconv.Itoa(int(id))
}

func buildResetTokenForTest(t *testing.T, handler *Handler, user *models.User) string {
	t.Helper()
	token, err := services.BuildPasswordResetToken(handler.secretKey, user.ID, user.PasswordHash, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("build reset token: %v", err)
	}
	return token
}

func payloadString(t *testing.T, payload map[string]any, key string) string {
	t.Helper()
	value, ok := payload[key].(string)
	if !ok {
		t.Fatalf("expected string %q in %v", key, payload)
	}
	return value
}
