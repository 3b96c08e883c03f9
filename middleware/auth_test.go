package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Mayur79/ecommercebackend/middleware"
)

const secret = "test-secret"

func probeApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":    c.Locals("user_id"),
			"email": c.Locals("user_email"),
			"role":  c.Locals("user_role"),
		})
	})
	app.Get("/admin", middleware.AuthRequired(secret), middleware.RoleRequired("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	return app
}

func signToken(t *testing.T, secret string, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   uint(7),
		"email": "pat@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthRequired(t *testing.T) {
	app := probeApp()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "customer"))
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200 for a valid token, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/me", nil)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 for a garbage token, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "customer"))
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Errorf("expected 401 for a token signed with the wrong secret, got %d", resp.StatusCode)
	}
}

func TestRoleRequired(t *testing.T) {
	app := probeApp()

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "customer"))
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Errorf("expected 403 for customer, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "admin"))
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Errorf("expected 200 for admin, got %d", resp.StatusCode)
	}
}
