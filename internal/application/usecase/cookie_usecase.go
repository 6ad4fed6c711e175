package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// CookieUseCase gestiona las cookies estructuradas de un ítem.
// Las escrituras exigen Update sobre los tipos de consulta del ítem, igual que el blob de cookie.
type CookieUseCase struct {
	itemRepo   repository.InsuranceCompanyItemRepository
	cookieRepo repository.InsuranceCompanyCookieRepository
	perms      PermissionGate
	tx         TxRunner
}

// NewCookieUseCase construye el caso de uso.
func NewCookieUseCase(itemRepo repository.InsuranceCompanyItemRepository, cookieRepo repository.InsuranceCompanyCookieRepository, perms PermissionGate, tx TxRunner) *CookieUseCase {
	return &CookieUseCase{itemRepo: itemRepo, cookieRepo: cookieRepo, perms: perms, tx: tx}
}

// List devuelve las cookies del ítem.
func (uc *CookieUseCase) List(ctx context.Context, scope entity.TenantScope, itemID int64) ([]dto.CookieResponse, error) {
	if _, err := uc.item(ctx, scope, itemID); err != nil {
		return nil, err
	}
	cookies, err := uc.cookieRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CookieResponse, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, entityToCookieResponse(c))
	}
	return out, nil
}

// Create añade una cookie. (ítem, nombre, dominio) repetido devuelve ErrDuplicate.
func (uc *CookieUseCase) Create(ctx context.Context, scope entity.TenantScope, itemID int64, in dto.CookieRequest) (*dto.CookieResponse, error) {
	if _, err := uc.writable(ctx, scope, itemID); err != nil {
		return nil, err
	}
	c, err := cookieFromRequest(itemID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.cookieRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := entityToCookieResponse(c)
	return &out, nil
}

// Replace sustituye todas las cookies del ítem en una transacción.
func (uc *CookieUseCase) Replace(ctx context.Context, scope entity.TenantScope, itemID int64, in dto.ReplaceCookiesRequest) ([]dto.CookieResponse, error) {
	if _, err := uc.writable(ctx, scope, itemID); err != nil {
		return nil, err
	}
	cookies := make([]*entity.InsuranceCompanyCookie, 0, len(in.Cookies))
	for i, req := range in.Cookies {
		c, err := cookieFromRequest(itemID, req)
		if err != nil {
			return nil, fmt.Errorf("cookie %d: %w", i, err)
		}
		cookies = append(cookies, c)
	}
	err := uc.tx.RunItem(ctx, func(_ repository.InsuranceCompanyItemRepository, cookieRepo repository.InsuranceCompanyCookieRepository) error {
		if err := cookieRepo.DeleteByItem(ctx, itemID); err != nil {
			return err
		}
		for _, c := range cookies {
			if err := cookieRepo.Create(ctx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CookieResponse, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, entityToCookieResponse(c))
	}
	return out, nil
}

// Delete elimina una cookie del ítem.
func (uc *CookieUseCase) Delete(ctx context.Context, scope entity.TenantScope, itemID, cookieID int64) error {
	if _, err := uc.writable(ctx, scope, itemID); err != nil {
		return err
	}
	c, err := uc.cookieRepo.GetByID(ctx, cookieID)
	if err != nil {
		return err
	}
	if c == nil || c.ItemID != itemID {
		return fmt.Errorf("cookie %d: %w", cookieID, domain.ErrNotFound)
	}
	return uc.cookieRepo.Delete(ctx, cookieID)
}

func (uc *CookieUseCase) item(ctx context.Context, scope entity.TenantScope, itemID int64) (*entity.InsuranceCompanyItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem %d: %w", itemID, domain.ErrNotFound)
	}
	if err := requireCompanyAccess(scope, item.CompanyID); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CookieUseCase) writable(ctx context.Context, scope entity.TenantScope, itemID int64) (*entity.InsuranceCompanyItem, error) {
	item, err := uc.item(ctx, scope, itemID)
	if err != nil {
		return nil, err
	}
	if err := requireItemWrite(ctx, uc.perms, scope, item); err != nil {
		return nil, err
	}
	return item, nil
}

func cookieFromRequest(itemID int64, in dto.CookieRequest) (*entity.InsuranceCompanyCookie, error) {
	name := strings.TrimSpace(in.Name)
	domainName := strings.TrimSpace(in.Domain)
	if name == "" || domainName == "" {
		return nil, fmt.Errorf("%w: name y domain son requeridos", domain.ErrInvalidInput)
	}
	sameSite, ok := entity.ParseSameSite(in.SameSite)
	if !ok {
		return nil, fmt.Errorf("%w: same_site %q no válido", domain.ErrInvalidInput, in.SameSite)
	}
	priority, ok := entity.ParsePriority(in.Priority)
	if !ok {
		return nil, fmt.Errorf("%w: priority %q no válido", domain.ErrInvalidInput, in.Priority)
	}
	path := in.Path
	if path == "" {
		path = "/"
	}
	return &entity.InsuranceCompanyCookie{
		ItemID:     itemID,
		Name:       name,
		Value:      in.Value,
		Domain:     domainName,
		Path:       path,
		Expires:    in.Expires,
		Creation:   in.Creation,
		LastAccess: in.LastAccess,
		HTTPOnly:   in.HTTPOnly,
		Secure:     in.Secure,
		SameSite:   sameSite,
		Priority:   priority,
	}, nil
}
