package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/sigorta-api/docs"
	appanalytics "github.com/jhoicas/sigorta-api/internal/application/analytics"
	"github.com/jhoicas/sigorta-api/internal/application/auth"
	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/sigorta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sigorta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sigorta-api/internal/interfaces/http"
	"github.com/jhoicas/sigorta-api/pkg/config"
	"github.com/jhoicas/sigorta-api/pkg/logger"
)

// @title                       Sigorta API
// @version                     1.0
// @description                 Backend multi-tenant de credenciales de aseguradoras y control de acceso.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("automation_required", cfg.Automation.Required).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	companyUserRepo := postgres.NewCompanyUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	queryTypeRepo := postgres.NewQueryTypeRepository(pool)
	permRepo := postgres.NewRolePermissionRepository(pool)
	insurerRepo := postgres.NewInsuranceCompanyRepository(pool)
	partageRepo := postgres.NewPartageRepository(pool)
	itemRepo := postgres.NewInsuranceCompanyItemRepository(pool)
	cookieRepo := postgres.NewCookieRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(companyRepo, userRepo, companyUserRepo, tokenRepo, auth.AutomationConfig{
		Secret: cfg.Automation.Secret,
		Issuer: cfg.Automation.Issuer,
	})
	permissions := usecase.NewPermissionService(companyUserRepo, permRepo)
	itemUC := usecase.NewItemUseCase(usecase.ItemRepos{
		Items:      itemRepo,
		Cookies:    cookieRepo,
		Insurers:   insurerRepo,
		Partages:   partageRepo,
		QueryTypes: queryTypeRepo,
	}, permissions, txRunner)

	// PDF: informe de accesos por empresa (sin secretos)
	reportUC := appanalytics.NewReportUseCase(
		companyRepo, companyUserRepo, itemRepo, cookieRepo, infrapdf.NewAccessReportGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	metrics := httpRouter.NewMetrics()
	app.Use(httpRouter.RequestID())
	app.Use(metrics.Middleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sigorta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo),
		CompanyUserUC: usecase.NewCompanyUserUseCase(companyUserRepo, companyRepo, roleRepo, txRunner),
		Permissions:   permissions,
		RoleUC:        usecase.NewRoleUseCase(roleRepo, permRepo, queryTypeRepo),
		QueryTypeUC:   usecase.NewQueryTypeUseCase(queryTypeRepo),
		InsurerUC:     usecase.NewInsuranceCompanyUseCase(insurerRepo, itemRepo),
		PartageUC:     usecase.NewPartageUseCase(partageRepo, itemRepo),
		ItemUC:        itemUC,
		CookieUC:      usecase.NewCookieUseCase(itemRepo, cookieRepo, permissions, txRunner),
		TOTPUC:        usecase.NewTOTPUseCase(itemRepo),
		DashboardUC:   appanalytics.NewDashboardUseCase(dashboardRepo),
		ReportUC:      reportUC,
		Automation: httpRouter.AutomationConfig{
			Secret:   cfg.Automation.Secret,
			Issuer:   cfg.Automation.Issuer,
			Required: cfg.Automation.Required,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
