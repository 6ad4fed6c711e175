package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	apphttp "github.com/jhoicas/sigorta-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/sigorta-api/pkg/jwt"
)

const (
	testAutomationSecret = "clave-de-automatizacion-para-tests"
	testIssuer           = "sigorta-api-test"
	validToken           = "0123456789abcdef0123456789abcdef01234567"
)

// fakeAuthenticator resuelve un único token opaco al scope configurado.
type fakeAuthenticator struct {
	scope entity.TenantScope
	seen  string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, bearer string) (entity.TenantScope, error) {
	f.seen = bearer
	if bearer != validToken {
		return entity.TenantScope{}, domain.ErrUnauthorized
	}
	return f.scope, nil
}

func buildAuthApp(a *fakeAuthenticator) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(a), func(c *fiber.Ctx) error {
		s := apphttp.GetScope(c)
		return c.JSON(fiber.Map{"company_id": s.CompanyID, "company_user_id": s.CompanyUserID})
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

func TestAuthMiddleware_TokenValidoCargaScope(t *testing.T) {
	a := &fakeAuthenticator{scope: entity.TenantScope{UserID: 1, CompanyUserID: 7, CompanyID: 10}}
	app := buildAuthApp(a)

	for _, prefix := range []string{"Bearer ", "Token ", "bearer "} {
		resp := doGet(t, app, "/protected", prefix+validToken)
		assert.Equal(t, http.StatusOK, resp.StatusCode, prefix)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, int64(10), body["company_id"])
		assert.Equal(t, int64(7), body["company_user_id"])
	}
	assert.Equal(t, validToken, a.seen)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildAuthApp(&fakeAuthenticator{})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer    "} {
		resp := doGet(t, app, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
		assert.Equal(t, "MISSING_TOKEN", decodeError(t, resp))
		_ = resp.Body.Close()
	}
}

func TestAuthMiddleware_TokenDesconocido(t *testing.T) {
	app := buildAuthApp(&fakeAuthenticator{})

	resp := doGet(t, app, "/protected", "Bearer ffffffffffffffffffffffffffffffffffffffff")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp))
}

func TestAuthMiddleware_CuentaVencidaEsForbidden(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(forbiddenAuthenticator{}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp := doGet(t, app, "/protected", "Bearer "+validToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp))
}

// forbiddenAuthenticator devuelve el error tal como lo envuelve auth.AuthUseCase.Authenticate.
type forbiddenAuthenticator struct{}

func (forbiddenAuthenticator) Authenticate(context.Context, string) (entity.TenantScope, error) {
	return entity.TenantScope{}, fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrUserExpired)
}

// ── Guard de automatización ───────────────────────────────────────────────────

func buildAutomationApp(required bool) *fiber.App {
	app := fiber.New()
	cfg := apphttp.AutomationConfig{Secret: testAutomationSecret, Issuer: testIssuer, Required: required}
	app.Get("/totp", apphttp.RequireAutomation(cfg, pkgjwt.ScopeTOTP), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func automationToken(t *testing.T, scopes ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testAutomationSecret, "crawler-01", testIssuer, scopes, 5)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireAutomation(t *testing.T) {
	cases := []struct {
		name     string
		required bool
		header   func(t *testing.T) string
		want     int
	}{
		{"no exigido deja pasar", false, func(*testing.T) string { return "" }, http.StatusOK},
		{"exigido sin token", true, func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"token basura", true, func(*testing.T) string { return "Bearer xyz" }, http.StatusUnauthorized},
		{"scope correcto", true, func(t *testing.T) string { return automationToken(t, pkgjwt.ScopeTOTP) }, http.StatusOK},
		{"scope ausente", true, func(t *testing.T) string { return automationToken(t, "reports") }, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, buildAutomationApp(tc.required), "/totp", tc.header(t))
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
