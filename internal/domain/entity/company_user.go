package entity

import "time"

// CompanyUser liga una identidad (User) con exactamente una Company.
// Una identidad pertenece como máximo a una empresa (user_id único).
type CompanyUser struct {
	ID        int64
	CompanyID int64
	UserID    int64
	IsAdmin   bool // omite por completo la evaluación de RolePermission
	IsActive  bool
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Cargados según la consulta.
	User    *User
	Company *Company
	Roles   []Role
}

// IsExpired informa si la cuenta venció respecto a now.
func (cu *CompanyUser) IsExpired(now time.Time) bool {
	return cu.ExpiresAt != nil && !cu.ExpiresAt.After(now)
}

// TenantScope contexto explícito del llamador, resuelto por el middleware de autenticación
// y pasado como parámetro a cada caso de uso.
type TenantScope struct {
	UserID        int64
	CompanyUserID int64
	CompanyID     int64
	IsAdmin       bool
	IsStaff       bool
	Automation    bool // token de servicio del crawler
	Subject       string
}

// CanSeeCompany informa si el llamador puede leer datos de companyID.
func (s TenantScope) CanSeeCompany(companyID int64) bool {
	return s.IsStaff || s.Automation || (s.CompanyID != 0 && s.CompanyID == companyID)
}

// IsUser informa si el scope corresponde a un usuario de empresa (no a un servicio).
func (s TenantScope) IsUser() bool {
	return !s.Automation && s.CompanyUserID != 0
}
