package dto

import "time"

// CreateCompanyUserRequest crea identidad y usuario de empresa en una sola operación.
// CompanyID solo lo usa el personal de back-office; un admin crea siempre en su empresa.
type CreateCompanyUserRequest struct {
	CompanyID int64      `json:"company_id"`
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsAdmin   bool       `json:"is_admin"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	RoleIDs   []int64    `json:"role_ids"`
}

// UpdateCompanyUserRequest campos opcionales; RoleIDs no nil reemplaza el conjunto de roles.
type UpdateCompanyUserRequest struct {
	Email          *string    `json:"email"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Password       *string    `json:"password"`
	IsAdmin        *bool      `json:"is_admin"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
	ClearExpiresAt bool       `json:"clear_expires_at"`
	RoleIDs        []int64    `json:"role_ids"`
}

// RoleRequest cuerpo de add_role / remove_role.
type RoleRequest struct {
	RoleID int64 `json:"role_id"`
}

// CompanyUserResponse salida de un usuario de empresa.
type CompanyUserResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Company   CompanySummary `json:"company"`
	IsAdmin   bool           `json:"is_admin"`
	IsActive  bool           `json:"is_active"`
	ExpiresAt *time.Time     `json:"expires_at"`
	Roles     []RoleSummary  `json:"roles"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PermissionCheckResponse salida de check_permission.
type PermissionCheckResponse struct {
	HasPermission bool   `json:"has_permission"`
	QueryType     string `json:"query_type"`
	Action        string `json:"action"`
}
