package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sigorta-api/internal/application/analytics"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        authService
	CompanyUC     *usecase.CompanyUseCase
	CompanyUserUC *usecase.CompanyUserUseCase
	Permissions   *usecase.PermissionService
	RoleUC        *usecase.RoleUseCase
	QueryTypeUC   *usecase.QueryTypeUseCase
	InsurerUC     *usecase.InsuranceCompanyUseCase
	PartageUC     *usecase.PartageUseCase
	ItemUC        *usecase.ItemUseCase
	CookieUC      *usecase.CookieUseCase
	TOTPUC        *usecase.TOTPUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *appanalytics.ReportUseCase
	Automation    AutomationConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	totpHandler := NewTOTPHandler(deps.TOTPUC)
	api.Get("/generate-totp", RequireAutomation(deps.Automation, jwt.ScopeTOTP), totpHandler.Generate)

	// Rutas protegidas (token opaco de sesión o JWT de automatización)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.CompanyUserUC, deps.ItemUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Get("/:id/users", companyHandler.Users)
	companies.Get("/:id/items", companyHandler.Items)
	companies.Get("/:id/access-report.pdf", dashboardHandler.AccessReport)

	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Company users
	cuHandler := NewCompanyUserHandler(deps.CompanyUserUC, deps.Permissions)
	companyUsers := protected.Group("/company-users")
	companyUsers.Get("/", cuHandler.List)
	companyUsers.Post("/", cuHandler.Create)
	companyUsers.Get("/admins", cuHandler.Admins)
	companyUsers.Get("/:id", cuHandler.GetByID)
	companyUsers.Put("/:id", cuHandler.Update)
	companyUsers.Delete("/:id", cuHandler.Delete)
	companyUsers.Get("/:id/roles", cuHandler.Roles)
	companyUsers.Post("/:id/add_role", cuHandler.AddRole)
	companyUsers.Post("/:id/remove_role", cuHandler.RemoveRole)
	companyUsers.Get("/:id/check_permission", cuHandler.CheckPermission)

	// Catálogo: roles, tipos de consulta y permisos
	catalogHandler := NewCatalogHandler(deps.RoleUC, deps.QueryTypeUC)
	roles := protected.Group("/roles")
	roles.Get("/", catalogHandler.ListRoles)
	roles.Post("/", catalogHandler.CreateRole)
	roles.Get("/:id", catalogHandler.GetRole)
	roles.Put("/:id", catalogHandler.UpdateRole)
	roles.Delete("/:id", catalogHandler.DeleteRole)
	roles.Get("/:id/permissions", catalogHandler.RolePermissions)

	queryTypes := protected.Group("/query-types")
	queryTypes.Get("/", catalogHandler.ListQueryTypes)
	queryTypes.Post("/", catalogHandler.CreateQueryType)
	queryTypes.Get("/:id", catalogHandler.GetQueryType)
	queryTypes.Put("/:id", catalogHandler.UpdateQueryType)
	queryTypes.Delete("/:id", catalogHandler.DeleteQueryType)

	permissions := protected.Group("/role-permissions")
	permissions.Get("/", catalogHandler.ListPermissions)
	permissions.Post("/", catalogHandler.CreatePermission)
	permissions.Get("/:id", catalogHandler.GetPermission)
	permissions.Put("/:id", catalogHandler.UpdatePermission)
	permissions.Delete("/:id", catalogHandler.DeletePermission)

	// Aseguradoras y grupos de reparto
	insurerHandler := NewInsuranceCompanyHandler(deps.InsurerUC, deps.PartageUC)
	insurers := protected.Group("/insurance-companies")
	insurers.Get("/", insurerHandler.List)
	insurers.Post("/", insurerHandler.Create)
	insurers.Get("/:id", insurerHandler.GetByID)
	insurers.Put("/:id", insurerHandler.Update)
	insurers.Delete("/:id", insurerHandler.Delete)
	insurers.Get("/:id/items", insurerHandler.Items)

	partages := protected.Group("/partages")
	partages.Get("/", insurerHandler.ListPartages)
	partages.Post("/", insurerHandler.CreatePartage)
	partages.Get("/:id", insurerHandler.GetPartage)
	partages.Put("/:id", insurerHandler.UpdatePartage)
	partages.Delete("/:id", insurerHandler.DeletePartage)
	partages.Get("/:id/related_companies", insurerHandler.RelatedCompanies)

	// Ítems de credenciales (rutas fijas antes de /:id)
	itemHandler := NewItemHandler(deps.ItemUC, deps.CookieUC)
	items := protected.Group("/insurance-company-items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/active_items", itemHandler.ActiveItems)
	items.Get("/car_query_items", itemHandler.CarQueryItems)
	items.Get("/by_query_type", RequireQueryPermission("query_type", access.ActionQuery, deps.Permissions), itemHandler.ByQueryType)
	items.Get("/by_partage", itemHandler.ByPartage)
	items.Get("/by_partage_and_insurance_company", itemHandler.ByPartageAndInsuranceCompany)
	items.Post("/bulk_update_partage", itemHandler.BulkUpdatePartage)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/add_query_type", itemHandler.AddQueryType)
	items.Post("/:id/remove_query_type", itemHandler.RemoveQueryType)
	items.Patch("/:id/update_partage_only", itemHandler.UpdatePartageOnly)
	items.Post("/:id/update_cookie", itemHandler.UpdateCookie)
	items.Get("/:id/same_company_items", itemHandler.SameCompanyItems)
	items.Get("/:id/same_partage_companies", itemHandler.SamePartageCompanies)
	items.Get("/:id/same_insurance_company_items", itemHandler.SameInsuranceCompanyItems)
	items.Get("/:id/cookies", itemHandler.Cookies)
	items.Post("/:id/cookies", itemHandler.CreateCookie)
	items.Put("/:id/cookies", itemHandler.ReplaceCookies)
	items.Delete("/:id/cookies/:cookieId", itemHandler.DeleteCookie)
}
