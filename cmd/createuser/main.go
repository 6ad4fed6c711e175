// createuser da de alta la primera identidad de back-office: empresa (si no existe), usuario staff
// y usuario de empresa administrador, en una sola transacción para la parte de usuario.
//
// Uso: go run ./cmd/createuser -company ACME -company-name "Acme Sigorta" -username admin -password s3creta
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
	"github.com/jhoicas/sigorta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sigorta-api/pkg/config"
	"github.com/jhoicas/sigorta-api/pkg/logger"
)

func main() {
	companyCode := flag.String("company", "", "código de empresa (se crea si no existe)")
	companyName := flag.String("company-name", "", "nombre de la empresa nueva")
	username := flag.String("username", "", "usuario")
	password := flag.String("password", "", "contraseña")
	email := flag.String("email", "", "email")
	staff := flag.Bool("staff", true, "operador de back-office")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("createuser")

	if *companyCode == "" || *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	companies := postgres.NewCompanyRepository(pool)
	company, err := ensureCompany(ctx, companies, strings.TrimSpace(*companyCode), *companyName)
	if err != nil {
		log.Fatal().Err(err).Msg("empresa")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	user := &entity.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      *staff,
	}
	cu := &entity.CompanyUser{CompanyID: company.ID, IsAdmin: true, IsActive: true}

	err = postgres.NewTxRunner(pool).RunCompanyUser(ctx, func(users repository.UserRepository, cus repository.CompanyUserRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		cu.UserID = user.ID
		return cus.Create(ctx, cu)
	})
	if err != nil {
		log.Fatal().Err(err).Str("username", *username).Msg("crear usuario")
	}

	log.Info().
		Int64("user_id", user.ID).
		Int64("company_user_id", cu.ID).
		Str("company", company.Code).
		Bool("staff", user.IsStaff).
		Msg("usuario creado")
}

func ensureCompany(ctx context.Context, repo repository.CompanyRepository, code, name string) (*entity.Company, error) {
	company, err := repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if company != nil {
		return company, nil
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("-company-name es requerido para crear la empresa")
	}
	company = &entity.Company{Code: code, Name: name, UserLimit: 5, IsActive: true}
	if err := repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}
