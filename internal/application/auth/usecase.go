package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
	"github.com/jhoicas/sigorta-api/pkg/jwt"
)

// tokenBytes longitud en bytes de la clave opaca (40 caracteres hex).
const tokenBytes = 20

// AutomationConfig validación de los JWT de servicio. Secret vacío los deshabilita.
type AutomationConfig struct {
	Secret string
	Issuer string
}

// AuthUseCase casos de uso de autenticación: login por empresa, resolución de token y logout.
type AuthUseCase struct {
	companyRepo     repository.CompanyRepository
	userRepo        repository.UserRepository
	companyUserRepo repository.CompanyUserRepository
	tokenRepo       repository.TokenRepository
	automation      AutomationConfig

	now    func() time.Time
	newKey func() (string, error)
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	companyUserRepo repository.CompanyUserRepository,
	tokenRepo repository.TokenRepository,
	automation AutomationConfig,
) *AuthUseCase {
	return &AuthUseCase{
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		companyUserRepo: companyUserRepo,
		tokenRepo:       tokenRepo,
		automation:      automation,
		now:             time.Now,
		newKey:          generateKey,
	}
}

// WithClock sustituye el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Login valida en orden fijo (la primera comprobación fallida gana) y devuelve el token durable
// de la identidad. Ninguna comprobación modifica empresa ni usuario; solo puede crearse el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || strings.TrimSpace(in.CompanyCode) == "" {
		return nil, domain.ErrInvalidRequest
	}
	now := uc.now()

	company, err := uc.companyRepo.GetByCode(ctx, strings.TrimSpace(in.CompanyCode))
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrUnknownCompany
	}
	if !company.IsActive {
		return nil, domain.ErrCompanyInactive
	}
	if company.IsExpired(now) {
		return nil, domain.ErrCompanyExpired
	}

	user, err := uc.verifyIdentity(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}

	cu, err := uc.companyUserRepo.GetByUserAndCompany(ctx, user.ID, company.ID)
	if err != nil {
		return nil, err
	}
	if cu == nil {
		return nil, domain.ErrUserNotLinked
	}
	if !cu.IsActive {
		return nil, domain.ErrUserInactive
	}
	if cu.IsExpired(now) {
		return nil, domain.ErrUserExpired
	}

	key, err := uc.newKey()
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	token, err := uc.tokenRepo.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return nil, err
	}

	roles := make([]dto.RoleSummary, 0, len(cu.Roles))
	for _, r := range cu.Roles {
		roles = append(roles, dto.RoleSummary{ID: r.ID, Name: r.Name})
	}
	return &dto.LoginResponse{
		Token:    token.Key,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Company:  dto.CompanySummary{ID: company.ID, Name: company.Name, Code: company.Code},
		IsAdmin:  cu.IsAdmin,
		Roles:    roles,
	}, nil
}

// verifyIdentity comprueba usuario y contraseña. Una identidad desactivada no autentica.
func (uc *AuthUseCase) verifyIdentity(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate resuelve el bearer en un TenantScope. Un JWT válido (si hay secreto configurado)
// produce un scope de automatización; en otro caso se busca el token opaco y se vuelven a
// comprobar empresa y usuario, de modo que desactivar o vencer un tenant corta sus sesiones.
func (uc *AuthUseCase) Authenticate(ctx context.Context, bearer string) (entity.TenantScope, error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		return entity.TenantScope{}, domain.ErrUnauthorized
	}
	if uc.automation.Secret != "" && strings.Count(bearer, ".") == 2 {
		claims, err := jwt.Parse(uc.automation.Secret, uc.automation.Issuer, bearer)
		if err != nil {
			return entity.TenantScope{}, fmt.Errorf("%w: token de servicio inválido", domain.ErrUnauthorized)
		}
		return entity.TenantScope{Automation: true, Subject: claims.Subject}, nil
	}

	token, err := uc.tokenRepo.GetByKey(ctx, bearer)
	if err != nil {
		return entity.TenantScope{}, err
	}
	if token == nil {
		return entity.TenantScope{}, fmt.Errorf("%w: token inválido", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return entity.TenantScope{}, err
	}
	if user == nil || !user.IsActive {
		return entity.TenantScope{}, fmt.Errorf("%w: usuario inactivo", domain.ErrUnauthorized)
	}

	scope := entity.TenantScope{UserID: user.ID, IsStaff: user.IsStaff, Subject: user.Username}
	cu, err := uc.companyUserRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return entity.TenantScope{}, err
	}
	if cu == nil {
		if user.IsStaff {
			return scope, nil
		}
		return entity.TenantScope{}, fmt.Errorf("%w: usuario sin empresa", domain.ErrForbidden)
	}

	now := uc.now()
	switch {
	case !cu.Company.IsActive:
		return entity.TenantScope{}, fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrCompanyInactive)
	case cu.Company.IsExpired(now):
		return entity.TenantScope{}, fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrCompanyExpired)
	case !cu.IsActive:
		return entity.TenantScope{}, fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrUserInactive)
	case cu.IsExpired(now):
		return entity.TenantScope{}, fmt.Errorf("%w: %v", domain.ErrForbidden, domain.ErrUserExpired)
	}
	scope.CompanyUserID = cu.ID
	scope.CompanyID = cu.CompanyID
	scope.IsAdmin = cu.IsAdmin
	return scope, nil
}

// Logout revoca el token del llamador; el siguiente login emite uno nuevo.
func (uc *AuthUseCase) Logout(ctx context.Context, scope entity.TenantScope) error {
	if scope.Automation || scope.UserID == 0 {
		return nil
	}
	return uc.tokenRepo.DeleteByUser(ctx, scope.UserID)
}

// Me describe al llamador autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, scope entity.TenantScope) (*dto.MeResponse, error) {
	out := &dto.MeResponse{
		IsStaff:    scope.IsStaff,
		IsAdmin:    scope.IsAdmin,
		Automation: scope.Automation,
		Subject:    scope.Subject,
		Roles:      []dto.RoleSummary{},
	}
	if scope.Automation {
		return out, nil
	}
	user, err := uc.userRepo.GetByID(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	out.UserID, out.Username, out.Email = user.ID, user.Username, user.Email

	if scope.CompanyUserID != 0 {
		cu, err := uc.companyUserRepo.GetByID(ctx, scope.CompanyUserID)
		if err != nil {
			return nil, err
		}
		if cu != nil {
			out.CompanyUserID = cu.ID
			out.Company = &dto.CompanySummary{ID: cu.Company.ID, Name: cu.Company.Name, Code: cu.Company.Code}
			for _, r := range cu.Roles {
				out.Roles = append(out.Roles, dto.RoleSummary{ID: r.ID, Name: r.Name})
			}
		}
	}
	return out, nil
}

// generateKey clave opaca aleatoria de 40 caracteres hex.
func generateKey() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
