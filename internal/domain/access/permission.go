// Package access evalúa los permisos por tipo de consulta de un usuario de empresa.
//
// Las concesiones de RolePermission (can_query, can_create, can_update) se modelan como
// un enum cerrado de acciones; un nombre de acción desconocido nunca concede nada.
package access

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Action acción sobre un tipo de consulta.
type Action string

const (
	ActionQuery  Action = "query"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// ParseAction convierte s en Action. Vacío equivale a ActionQuery.
func ParseAction(s string) (Action, error) {
	switch Action(strings.TrimSpace(strings.ToLower(s))) {
	case "", ActionQuery:
		return ActionQuery, nil
	case ActionCreate:
		return ActionCreate, nil
	case ActionUpdate:
		return ActionUpdate, nil
	}
	return "", fmt.Errorf("access: acción desconocida %q", s)
}

// Grant concesión de un rol sobre un tipo de consulta, tal como la devuelve el repositorio.
type Grant struct {
	RoleID     int64
	RoleActive bool
	QueryType  string
	CanQuery   bool
	CanCreate  bool
	CanUpdate  bool
}

// Allows informa si la concesión habilita la acción.
func (g Grant) Allows(a Action) bool {
	switch a {
	case ActionQuery:
		return g.CanQuery
	case ActionCreate:
		return g.CanCreate
	case ActionUpdate:
		return g.CanUpdate
	}
	return false
}

// HasPermission decide si un usuario puede ejecutar action sobre queryType.
// Un administrador pasa siempre; en otro caso basta con que algún rol activo tenga la concesión.
func HasPermission(isAdmin bool, grants []Grant, queryType string, action Action) bool {
	if isAdmin {
		return true
	}
	queryType = NormalizeQueryType(queryType)
	for _, g := range grants {
		if g.RoleActive && g.QueryType == queryType && g.Allows(action) {
			return true
		}
	}
	return false
}

// HasPermissionAll exige la acción sobre todos los tipos de consulta indicados.
// Sin tipos de consulta no hay concesión que evaluar: solo pasa un administrador.
func HasPermissionAll(isAdmin bool, grants []Grant, queryTypes []string, action Action) bool {
	if isAdmin {
		return true
	}
	if len(queryTypes) == 0 {
		return false
	}
	for _, qt := range queryTypes {
		if !HasPermission(false, grants, qt, action) {
			return false
		}
	}
	return true
}

// NormalizeQueryType recorta y pasa a minúsculas el nombre recibido de clientes externos.
// Un Caser no se comparte entre goroutines, por eso se crea en cada llamada.
func NormalizeQueryType(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}
