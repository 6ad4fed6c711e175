package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sigorta-api/internal/domain/access"
)

func TestHasPermission_AdminSinConcesiones(t *testing.T) {
	for _, qt := range []string{"traffic", "casco", "life", "cualquiera"} {
		for _, a := range []access.Action{access.ActionQuery, access.ActionCreate, access.ActionUpdate} {
			assert.True(t, access.HasPermission(true, nil, qt, a), "admin debe pasar siempre (%s/%s)", qt, a)
		}
	}
}

func TestHasPermission_SinRolQueConceda(t *testing.T) {
	grants := []access.Grant{
		{RoleID: 1, RoleActive: true, QueryType: "traffic", CanQuery: false, CanCreate: true},
		{RoleID: 2, RoleActive: true, QueryType: "casco", CanQuery: true},
	}
	assert.False(t, access.HasPermission(false, grants, "traffic", access.ActionQuery))
	assert.False(t, access.HasPermission(false, nil, "traffic", access.ActionQuery))
}

func TestHasPermission_RolInactivoNoConcede(t *testing.T) {
	grants := []access.Grant{{RoleID: 1, RoleActive: false, QueryType: "traffic", CanQuery: true}}
	assert.False(t, access.HasPermission(false, grants, "traffic", access.ActionQuery))

	grants = append(grants, access.Grant{RoleID: 2, RoleActive: true, QueryType: "traffic", CanQuery: true})
	assert.True(t, access.HasPermission(false, grants, "traffic", access.ActionQuery))
}

func TestHasPermission_ConcesionesIndependientes(t *testing.T) {
	grants := []access.Grant{{RoleID: 1, RoleActive: true, QueryType: "health", CanUpdate: true}}
	assert.False(t, access.HasPermission(false, grants, "health", access.ActionQuery))
	assert.False(t, access.HasPermission(false, grants, "health", access.ActionCreate))
	assert.True(t, access.HasPermission(false, grants, "health", access.ActionUpdate))
}

func TestHasPermission_NormalizaNombre(t *testing.T) {
	grants := []access.Grant{{RoleID: 1, RoleActive: true, QueryType: "traffic", CanQuery: true}}
	assert.True(t, access.HasPermission(false, grants, "  TRAFFIC ", access.ActionQuery))
}

func TestHasPermissionAll(t *testing.T) {
	grants := []access.Grant{
		{RoleID: 1, RoleActive: true, QueryType: "traffic", CanCreate: true},
		{RoleID: 1, RoleActive: true, QueryType: "casco", CanCreate: false},
	}
	assert.True(t, access.HasPermissionAll(false, grants, []string{"traffic"}, access.ActionCreate))
	assert.False(t, access.HasPermissionAll(false, grants, []string{"traffic", "casco"}, access.ActionCreate))
	assert.False(t, access.HasPermissionAll(false, grants, nil, access.ActionCreate), "sin tipos de consulta solo pasa un administrador")
	assert.False(t, access.HasPermissionAll(false, grants, []string{}, access.ActionUpdate))
	assert.True(t, access.HasPermissionAll(true, nil, nil, access.ActionUpdate))
	assert.True(t, access.HasPermissionAll(true, nil, []string{"casco"}, access.ActionCreate))
}

func TestParseAction(t *testing.T) {
	a, err := access.ParseAction("")
	require.NoError(t, err)
	assert.Equal(t, access.ActionQuery, a)

	a, err = access.ParseAction("Update")
	require.NoError(t, err)
	assert.Equal(t, access.ActionUpdate, a)

	_, err = access.ParseAction("delete")
	assert.Error(t, err, "una acción fuera del enum no debe aceptarse")
}
