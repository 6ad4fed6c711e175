package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/sigorta-api/internal/application/dto"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
	"github.com/jhoicas/sigorta-api/internal/domain/repository"
)

// QueryTypeUseCase gestiona el conjunto cerrado de tipos de consulta.
type QueryTypeUseCase struct {
	repo repository.QueryTypeRepository
}

// NewQueryTypeUseCase construye el caso de uso.
func NewQueryTypeUseCase(repo repository.QueryTypeRepository) *QueryTypeUseCase {
	return &QueryTypeUseCase{repo: repo}
}

// Create registra un tipo; el nombre se normaliza y debe pertenecer al conjunto cerrado.
func (uc *QueryTypeUseCase) Create(ctx context.Context, scope entity.TenantScope, in dto.QueryTypeRequest) (*dto.QueryTypeResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	name, err := validQueryTypeName(in.Name)
	if err != nil {
		return nil, err
	}
	qt := &entity.QueryType{Name: name, Description: in.Description}
	if err := uc.repo.Create(ctx, qt); err != nil {
		return nil, err
	}
	out := entityToQueryTypeResponse(qt)
	return &out, nil
}

// GetByID obtiene un tipo de consulta.
func (uc *QueryTypeUseCase) GetByID(ctx context.Context, id int64) (*dto.QueryTypeResponse, error) {
	qt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qt == nil {
		return nil, fmt.Errorf("tipo de consulta %d: %w", id, domain.ErrNotFound)
	}
	out := entityToQueryTypeResponse(qt)
	return &out, nil
}

// Update reescribe nombre y descripción.
func (uc *QueryTypeUseCase) Update(ctx context.Context, scope entity.TenantScope, id int64, in dto.QueryTypeRequest) (*dto.QueryTypeResponse, error) {
	if err := requireStaff(scope); err != nil {
		return nil, err
	}
	name, err := validQueryTypeName(in.Name)
	if err != nil {
		return nil, err
	}
	qt := &entity.QueryType{ID: id, Name: name, Description: in.Description}
	if err := uc.repo.Update(ctx, qt); err != nil {
		return nil, err
	}
	out := entityToQueryTypeResponse(qt)
	return &out, nil
}

// Delete elimina un tipo de consulta.
func (uc *QueryTypeUseCase) Delete(ctx context.Context, scope entity.TenantScope, id int64) error {
	if err := requireStaff(scope); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List devuelve todos los tipos.
func (uc *QueryTypeUseCase) List(ctx context.Context) ([]dto.QueryTypeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QueryTypeResponse, 0, len(list))
	for _, qt := range list {
		out = append(out, entityToQueryTypeResponse(qt))
	}
	return out, nil
}

func validQueryTypeName(raw string) (string, error) {
	name := access.NormalizeQueryType(raw)
	if !entity.IsValidQueryTypeName(name) {
		return "", fmt.Errorf("%w: tipo de consulta %q desconocido", domain.ErrInvalidInput, raw)
	}
	return name, nil
}
