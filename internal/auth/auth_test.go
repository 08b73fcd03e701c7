package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-status-service/internal/domain"
	apperrors "github.com/spec-kit/event-status-service/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "events", 5)
	token, expiresAt, err := tm.GenerateToken("u-1", domain.RoleMember, []string{"g-1"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatalf("expected expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != domain.RoleMember || len(claims.Groups) != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsForeignTokens(t *testing.T) {
	token, _, err := NewTokenManager("other-secret", "events", 5).GenerateToken("u-1", domain.RoleMember, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := NewTokenManager("secret", "events", 5).ParseToken(token); err == nil {
		t.Fatalf("expected signature error")
	}

	token, _, err = NewTokenManager("secret", "someone-else", 5).GenerateToken("u-1", domain.RoleMember, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := NewTokenManager("secret", "events", 5).ParseToken(token); err == nil {
		t.Fatalf("expected issuer error")
	}
}

func TestParseTokenRequiresSubject(t *testing.T) {
	tm := NewTokenManager("secret", "", 5)
	token, _, err := tm.GenerateToken("", domain.RoleOrganizer, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := tm.ParseToken(token); err == nil {
		t.Fatalf("expected error for missing subject")
	}
}

func newGuardedApp(tm *TokenManager, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	handlers := append([]fiber.Handler{NewAuthMiddleware(tm).Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.SendString(principal.SubjectID)
	})
	app.Get("/groups/:groupId", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", "", 5)
	app := newGuardedApp(tm, RequireGroupAccess("groupId"))

	member, _, _ := tm.GenerateToken("u-1", domain.RoleMember, []string{"g-1"})
	organizer, _, _ := tm.GenerateToken("u-2", domain.RoleOrganizer, nil)
	unknownRole, _, _ := tm.GenerateToken("u-3", domain.Role("guest"), []string{"g-1"})

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/groups/g-1", "", http.StatusUnauthorized},
		{"garbage token", "/groups/g-1", "not-a-jwt", http.StatusUnauthorized},
		{"unknown role", "/groups/g-1", unknownRole, http.StatusUnauthorized},
		{"member of group", "/groups/g-1", member, http.StatusOK},
		{"member of other group", "/groups/g-2", member, http.StatusForbidden},
		{"organizer", "/groups/g-2", organizer, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := doRequest(t, app, tc.path, tc.token); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenManager("secret", "", 5)
	app := newGuardedApp(tm, RequireRole(domain.RoleOrganizer))

	member, _, _ := tm.GenerateToken("u-1", domain.RoleMember, []string{"g-1"})
	organizer, _, _ := tm.GenerateToken("u-2", domain.RoleOrganizer, nil)

	if got := doRequest(t, app, "/groups/g-1", member); got != http.StatusForbidden {
		t.Fatalf("expected member to be forbidden, got %d", got)
	}
	if got := doRequest(t, app, "/groups/g-1", organizer); got != http.StatusOK {
		t.Fatalf("expected organizer to pass, got %d", got)
	}
}
