package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
	apphttp "github.com/jhoicas/sigorta-api/internal/interfaces/http"
)

const totpSecret = "JBSWY3DPEHPK3PXP"

type fakeItemRepo struct {
	repository.InsuranceCompanyItemRepository
	items []*entity.InsuranceCompanyItem
}

func (f *fakeItemRepo) FindByCredentials(_ context.Context, username, password string) ([]*entity.InsuranceCompanyItem, error) {
	var out []*entity.InsuranceCompanyItem
	for _, it := range f.items {
		if it.Username == username && it.Password == password {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeCompanyUserRepo struct {
	repository.CompanyUserRepository
	byID map[int64]*entity.CompanyUser
}

func (f *fakeCompanyUserRepo) GetByID(_ context.Context, id int64) (*entity.CompanyUser, error) {
	return f.byID[id], nil
}

type fakePermRepo struct {
	repository.RolePermissionRepository
	grants map[int64][]access.Grant
}

func (f *fakePermRepo) GrantsForCompanyUser(_ context.Context, companyUserID int64) ([]access.Grant, error) {
	return f.grants[companyUserID], nil
}

func newPermissionService() *usecase.PermissionService {
	cus := &fakeCompanyUserRepo{byID: map[int64]*entity.CompanyUser{
		7: {ID: 7, CompanyID: 10, IsActive: true},
		8: {ID: 8, CompanyID: 20, IsActive: true},
	}}
	perms := &fakePermRepo{grants: map[int64][]access.Grant{
		7: {{RoleID: 1, RoleActive: true, QueryType: "traffic", CanQuery: true}},
	}}
	return usecase.NewPermissionService(cus, perms)
}

// withScope simula AuthMiddleware dejando un scope fijo en Locals.
func withScope(scope entity.TenantScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalScope, scope)
		return c.Next()
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ── TOTP ──────────────────────────────────────────────────────────────────────

func buildTOTPApp(items ...*entity.InsuranceCompanyItem) *fiber.App {
	app := fiber.New()
	h := apphttp.NewTOTPHandler(usecase.NewTOTPUseCase(&fakeItemRepo{items: items}))
	app.Get("/api/generate-totp", h.Generate)
	return app
}

func TestTOTPHandler_DevuelveEnteroDesnudo(t *testing.T) {
	app := buildTOTPApp(&entity.InsuranceCompanyItem{ID: 1, Username: "acente", Password: "s3cr3t", TOTPSecret: totpSecret})

	resp := doGet(t, app, "/api/generate-totp?username=acente&password=s3cr3t", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var code int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&code))
	assert.GreaterOrEqual(t, code, 0)
	assert.Less(t, code, 1000000)

	// Tolerancia de una ventana por si el test cruza el límite de 30 s.
	assert.True(t, totp.Validate(fmt.Sprintf("%06d", code), totpSecret), "el código debe validar contra el secreto")
}

func TestTOTPHandler_Errores(t *testing.T) {
	dup := []*entity.InsuranceCompanyItem{
		{ID: 1, Username: "dup", Password: "x", TOTPSecret: totpSecret},
		{ID: 2, Username: "dup", Password: "x", TOTPSecret: totpSecret},
		{ID: 3, Username: "nosecret", Password: "x", TOTPSecret: "  "},
	}
	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"faltan parámetros", "", http.StatusBadRequest},
		{"falta password", "?username=dup", http.StatusBadRequest},
		{"sin coincidencias", "?username=nadie&password=x", http.StatusNotFound},
		{"coincidencia ambigua", "?username=dup&password=x", http.StatusNotFound},
		{"sin secreto", "?username=nosecret&password=x", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, buildTOTPApp(dup...), "/api/generate-totp"+tc.query, "")
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

// ── check_permission ──────────────────────────────────────────────────────────

func buildCheckApp(scope entity.TenantScope) *fiber.App {
	app := fiber.New()
	h := apphttp.NewCompanyUserHandler(nil, newPermissionService())
	app.Get("/company-users/:id/check_permission", withScope(scope), h.CheckPermission)
	return app
}

func TestCheckPermission(t *testing.T) {
	admin := entity.TenantScope{UserID: 1, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}

	cases := []struct {
		name    string
		path    string
		status  int
		allowed bool
	}{
		{"concedido, acción por defecto query", "/company-users/7/check_permission?query_type=traffic", http.StatusOK, true},
		{"normaliza el tipo", "/company-users/7/check_permission?query_type=%20TRAFFIC%20", http.StatusOK, true},
		{"acción no concedida", "/company-users/7/check_permission?query_type=traffic&action=create", http.StatusOK, false},
		{"tipo sin concesión", "/company-users/7/check_permission?query_type=casco", http.StatusOK, false},
		{"falta query_type", "/company-users/7/check_permission", http.StatusBadRequest, false},
		{"acción desconocida", "/company-users/7/check_permission?query_type=traffic&action=delete", http.StatusBadRequest, false},
		{"tipo fuera del catálogo", "/company-users/7/check_permission?query_type=yacht", http.StatusBadRequest, false},
		{"usuario inexistente", "/company-users/99/check_permission?query_type=traffic", http.StatusNotFound, false},
		{"usuario de otro tenant", "/company-users/8/check_permission?query_type=traffic", http.StatusForbidden, false},
		{"id no numérico", "/company-users/abc/check_permission?query_type=traffic", http.StatusBadRequest, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, buildCheckApp(admin), tc.path, "")
			defer resp.Body.Close()
			raw := readBody(t, resp)
			require.Equal(t, tc.status, resp.StatusCode, raw)
			if tc.status != http.StatusOK {
				return
			}
			var body struct {
				HasPermission bool   `json:"has_permission"`
				QueryType     string `json:"query_type"`
			}
			require.NoError(t, json.Unmarshal([]byte(raw), &body))
			assert.Equal(t, tc.allowed, body.HasPermission)
			assert.Equal(t, strings.TrimSpace(strings.ToLower(body.QueryType)), body.QueryType)
		})
	}
}

// ── Permiso por tipo de consulta ──────────────────────────────────────────────

func TestRequireQueryPermission(t *testing.T) {
	build := func(scope entity.TenantScope) *fiber.App {
		app := fiber.New()
		app.Get("/items/by_query_type",
			withScope(scope),
			apphttp.RequireQueryPermission("query_type", access.ActionQuery, newPermissionService()),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
		)
		return app
	}
	user := entity.TenantScope{UserID: 2, CompanyUserID: 7, CompanyID: 10}

	cases := []struct {
		name  string
		scope entity.TenantScope
		query string
		want  int
	}{
		{"usuario con concesión", user, "?query_type=traffic", http.StatusOK},
		{"usuario sin concesión", user, "?query_type=casco", http.StatusForbidden},
		{"falta el tipo", user, "", http.StatusBadRequest},
		{"tipo fuera del catálogo", user, "?query_type=yacht", http.StatusBadRequest},
		{"tipo fuera del catálogo, back-office", entity.TenantScope{UserID: 1, IsStaff: true}, "?query_type=yacht", http.StatusBadRequest},
		{"back-office", entity.TenantScope{UserID: 1, IsStaff: true}, "?query_type=casco", http.StatusOK},
		{"automatización", entity.TenantScope{Automation: true, Subject: "crawler"}, "?query_type=casco", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doGet(t, build(tc.scope), "/items/by_query_type"+tc.query, "")
			defer resp.Body.Close()
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

// ── Request id y métricas ─────────────────────────────────────────────────────

func TestRequestID_ReutilizaOGenera(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))

	resp = doGet(t, app, "/ping", "")
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestMetrics_ExponeContadorPorRuta(t *testing.T) {
	m := apphttp.NewMetrics()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/companies/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doGet(t, app, "/api/companies/42", "")
	_ = resp.Body.Close()

	resp = doGet(t, app, "/metrics", "")
	defer resp.Body.Close()
	body := readBody(t, resp)
	assert.Contains(t, body, `sigorta_http_requests_total{method="GET",route="/api/companies/:id",status="200"} 1`)
}
