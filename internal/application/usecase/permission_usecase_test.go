package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/application/usecase"
	"github.com/jhoicas/sigorta-api/internal/domain"
	"github.com/jhoicas/sigorta-api/internal/domain/access"
	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

func newPermissionService() *usecase.PermissionService {
	cus := &fakeCompanyUserRepo{byID: map[int64]*entity.CompanyUser{
		1: {ID: 1, CompanyID: 10, IsAdmin: true, IsActive: true},
		2: {ID: 2, CompanyID: 10, IsActive: true},
		3: {ID: 3, CompanyID: 20, IsActive: true},
	}}
	perms := &fakePermRepo{grants: map[int64][]access.Grant{
		2: {
			{RoleID: 7, RoleActive: true, QueryType: "traffic", CanQuery: true},
			{RoleID: 8, RoleActive: false, QueryType: "casco", CanQuery: true, CanCreate: true},
		},
	}}
	return usecase.NewPermissionService(cus, perms)
}

func TestPermissionService_Check_Evaluacion(t *testing.T) {
	svc := newPermissionService()
	ctx := context.Background()
	staff := entity.TenantScope{UserID: 1, IsStaff: true}

	cases := []struct {
		name   string
		cuID   int64
		qt     string
		action access.Action
		want   bool
	}{
		{"admin sin concesiones", 1, "life", access.ActionUpdate, true},
		{"rol activo concede query", 2, "traffic", access.ActionQuery, true},
		{"nombre con mayúsculas", 2, " Traffic ", access.ActionQuery, true},
		{"rol activo no concede create", 2, "traffic", access.ActionCreate, false},
		{"rol inactivo ignorado", 2, "casco", access.ActionQuery, false},
		{"sin concesiones", 3, "traffic", access.ActionQuery, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Check(ctx, staff, tc.cuID, tc.qt, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := svc.Check(ctx, staff, 99, "traffic", access.ActionQuery)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPermissionService_Check(t *testing.T) {
	svc := newPermissionService()
	ctx := context.Background()
	scope := entity.TenantScope{UserID: 5, CompanyUserID: 2, CompanyID: 10}

	ok, err := svc.Check(ctx, scope, 2, "traffic", access.ActionQuery)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Check(ctx, scope, 2, "  ", access.ActionQuery)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	admin := entity.TenantScope{UserID: 4, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}
	_, err = svc.Check(ctx, admin, 1, "inexistente", access.ActionQuery)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido aunque el usuario sea administrador")

	_, err = svc.Check(ctx, scope, 3, "traffic", access.ActionQuery)
	assert.ErrorIs(t, err, domain.ErrForbidden, "usuario de otro tenant")

	staff := entity.TenantScope{UserID: 1, IsStaff: true}
	ok, err = svc.Check(ctx, staff, 3, "traffic", access.ActionQuery)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionService_Require(t *testing.T) {
	svc := newPermissionService()
	ctx := context.Background()

	user := entity.TenantScope{UserID: 5, CompanyUserID: 2, CompanyID: 10}
	require.NoError(t, svc.Require(ctx, user, []string{"traffic"}, access.ActionQuery))
	assert.ErrorIs(t, svc.Require(ctx, user, nil, access.ActionCreate), domain.ErrForbidden, "lista vacía no concede")
	assert.ErrorIs(t, svc.Require(ctx, user, []string{}, access.ActionUpdate), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Require(ctx, user, []string{"traffic", "casco"}, access.ActionQuery), domain.ErrForbidden)

	admin := entity.TenantScope{UserID: 4, CompanyUserID: 1, CompanyID: 10, IsAdmin: true}
	require.NoError(t, svc.Require(ctx, admin, []string{"life"}, access.ActionCreate))
	require.NoError(t, svc.Require(ctx, admin, nil, access.ActionUpdate))

	staff := entity.TenantScope{UserID: 1, IsStaff: true}
	require.NoError(t, svc.Require(ctx, staff, []string{"life"}, access.ActionCreate))

	bot := entity.TenantScope{Automation: true, Subject: "crawler"}
	assert.ErrorIs(t, svc.Require(ctx, bot, []string{"traffic"}, access.ActionQuery), domain.ErrForbidden)
}
