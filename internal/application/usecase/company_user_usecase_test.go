package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

func newCompanyUserFixture() (*usecase.CompanyUserUseCase, *fakeCompanyUserRepo, *fakeUserRepo) {
	cus := &fakeCompanyUserRepo{byID: map[int64]*entity.CompanyUser{
		1: {ID: 1, UserID: 11, CompanyID: 10, IsAdmin: true, IsActive: true},
		2: {ID: 2, UserID: 12, CompanyID: 10, IsActive: true},
		3: {ID: 3, UserID: 13, CompanyID: 20, IsActive: true},
	}}
	users := &fakeUserRepo{}
	roles := &fakeRoleRepo{byID: map[int64]*entity.Role{7: {ID: 7, Name: "Operador", IsActive: true}}}
	tx := &fakeTx{users: users, cus: cus}
	return usecase.NewCompanyUserUseCase(cus, nil, roles, tx), cus, users
}

func TestCompanyUserUseCase_Delete_SoloAdminDeLaEmpresa(t *testing.T) {
	uc, cus, users := newCompanyUserFixture()
	ctx := context.Background()

	member := entity.TenantScope{UserID: 12, CompanyUserID: 2, CompanyID: 10}
	assert.ErrorIs(t, uc.Delete(ctx, member, 2), domain.ErrForbidden)

	admin := entity.TenantScope{UserID: 11, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}
	assert.ErrorIs(t, uc.Delete(ctx, admin, 3), domain.ErrForbidden, "otra empresa")

	require.NoError(t, uc.Delete(ctx, admin, 2))
	assert.Equal(t, []int64{2}, cus.deleted)
	assert.Equal(t, []int64{12}, users.deleted, "la identidad se borra con el usuario de empresa")

	assert.ErrorIs(t, uc.Delete(ctx, admin, 2), domain.ErrNotFound)
}

func TestCompanyUserUseCase_AddRole(t *testing.T) {
	uc, cus, _ := newCompanyUserFixture()
	ctx := context.Background()
	admin := entity.TenantScope{UserID: 11, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}

	_, err := uc.AddRole(ctx, admin, 2, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, cus.roles[2])

	_, err = uc.AddRole(ctx, admin, 2, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddRole(ctx, admin, 2, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
