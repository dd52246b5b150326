package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/jwt"
)

const testSecret = "middleware-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: testSecret, ExpiryHours: 1},
	}
}

func guardedApp(cfg *config.Config, roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{RequireAuth(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/guarded", handlers...)
	return app
}

func TestRequireAuthValidToken(t *testing.T) {
	app := guardedApp(testConfig())

	token, err := jwt.Generate(7, "doc@polmed.co.za", models.RoleDoctor, testSecret, 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	app := guardedApp(testConfig())

	expired, err := jwt.Generate(7, "doc@polmed.co.za", models.RoleDoctor, testSecret, -1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	wrongKey, err := jwt.Generate(7, "doc@polmed.co.za", models.RoleDoctor, "other-secret", 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signature", "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/guarded", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", tc.name, err)
		}
		// Every authentication failure reads the same: 401, never 403
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, resp.StatusCode)
		}
	}
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	app := guardedApp(testConfig(), models.RoleAdministrator, models.RoleNurse)

	token, err := jwt.Generate(3, "nurse@polmed.co.za", models.RoleNurse, testSecret, 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	app := guardedApp(testConfig(), models.RoleAdministrator)

	token, err := jwt.Generate(3, "viewer@polmed.co.za", models.RoleViewer, testSecret, 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
