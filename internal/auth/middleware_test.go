package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/domain"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

func newTestApp(mw *Middleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"id": identity.ID, "role": identity.Role})
	})
	return app
}

func TestMiddleware_MissingHeader(t *testing.T) {
	app := newTestApp(NewMiddleware(NewTokenManager("secret", 24)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddleware_WrongScheme(t *testing.T) {
	app := newTestApp(NewMiddleware(NewTokenManager("secret", 24)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	app := newTestApp(NewMiddleware(NewTokenManager("secret", 24)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMiddleware_ForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("other-secret", 24).Generate(testIdentity())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app := newTestApp(NewMiddleware(NewTokenManager("secret", 24)))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	tm := NewTokenManager("secret", 24)
	token, _, err := tm.Generate(testIdentity())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app := newTestApp(NewMiddleware(tm))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("secret", 24)
	userToken, _, _ := tm.Generate(domain.Identity{ID: "u1", Email: "u@example.com", Role: domain.RoleUser})
	agentToken, _, _ := tm.Generate(domain.Identity{ID: "a1", Email: "a@example.com", Role: domain.RoleAgent})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	mw := NewMiddleware(tm)
	app.Post("/listings", mw.Handle, RequireRole(domain.RoleAgent, domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusCreated)
	})

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"user forbidden", userToken, http.StatusForbidden},
		{"agent allowed", agentToken, http.StatusCreated},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/listings", nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", tc.name, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
	}
}
