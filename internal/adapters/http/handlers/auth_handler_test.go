package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/password"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Deactivate(ctx context.Context, id uint) error { return nil }

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) GetRoleByName(ctx context.Context, name string) (*models.UserRole, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListRoles(ctx context.Context) ([]*models.UserRole, error) { return nil, nil }

type fakeAuditRepo struct {
	entries []*models.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, filter repositories.AuditFilter, offset, limit int) ([]*models.AuditLog, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

func (r *fakeAuditRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return int64(len(r.entries)), nil
}

func newAuthTestApp(t *testing.T) (*fiber.App, *fakeUserRepo) {
	t.Helper()

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "handler-test-secret", ExpiryHours: 1}}
	userRepo := &fakeUserRepo{users: make(map[string]*models.User)}
	authService := services.NewAuthService(userRepo, services.NewAuditService(&fakeAuditRepo{}), cfg)
	handler := NewAuthHandler(authService)

	app := fiber.New()
	app.Post("/api/v1/auth/login", handler.Login)
	app.Get("/api/v1/auth/me", middleware.RequireAuth(cfg), handler.Me)

	hash, err := password.Hash("s3cure-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	userRepo.users["clerk@polmed.co.za"] = &models.User{
		ID:           1,
		Email:        "clerk@polmed.co.za",
		PasswordHash: hash,
		FirstName:    "Lerato",
		LastName:     "Nkosi",
		Role:         models.UserRole{ID: 1, RoleName: models.RoleClerk},
		IsActive:     true,
	}

	return app, userRepo
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var parsed map[string]interface{}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return parsed
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"clerk@polmed.co.za","password":"s3cure-pass"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp.Body)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["token"] == "" {
		t.Fatalf("expected a token in the response, got %v", body)
	}

	// Token from login works against a guarded endpoint
	token, _ := data["token"].(string)
	meReq := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(meReq, 5000)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer meResp.Body.Close()
	if meResp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from /me, got %d", meResp.StatusCode)
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"clerk@polmed.co.za","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp.Body)
	if body["error"] != "Invalid email or password" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"not-an-email","password":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
