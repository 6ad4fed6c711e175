package dto

import "time"

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateRoleRequest campos opcionales del rol.
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QueryTypeRequest entrada para crear o actualizar un tipo de consulta.
type QueryTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QueryTypeResponse salida de un tipo de consulta.
type QueryTypeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// RolePermissionRequest entrada para crear o actualizar un permiso.
type RolePermissionRequest struct {
	RoleID      int64 `json:"role"`
	QueryTypeID int64 `json:"query_type"`
	CanQuery    bool  `json:"can_query"`
	CanCreate   bool  `json:"can_create"`
	CanUpdate   bool  `json:"can_update"`
}

// RolePermissionResponse salida de un permiso.
type RolePermissionResponse struct {
	ID            int64     `json:"id"`
	RoleID        int64     `json:"role"`
	QueryTypeID   int64     `json:"query_type"`
	QueryTypeName string    `json:"query_type_name"`
	CanQuery      bool      `json:"can_query"`
	CanCreate     bool      `json:"can_create"`
	CanUpdate     bool      `json:"can_update"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// InsuranceCompanyRequest entrada para crear o actualizar una aseguradora.
type InsuranceCompanyRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Image       string `json:"image"`
	LoginURL    string `json:"login_url"`
	ExplorerURL string `json:"explorer_url"`
	HomeURL     string `json:"home_url"`
	IsActive    *bool  `json:"is_active"`
}

// InsuranceCompanyResponse salida de una aseguradora.
type InsuranceCompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Image       string    `json:"image"`
	LoginURL    string    `json:"login_url"`
	ExplorerURL string    `json:"explorer_url"`
	HomeURL     string    `json:"home_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InsurerSummary resumen {id, name, code} de una aseguradora.
type InsurerSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// PartageRequest entrada para crear o actualizar un grupo de reparto.
type PartageRequest struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"is_active"`
}

// PartageSummary resumen {id, name, code} de un grupo.
type PartageSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// PartageResponse salida de un grupo.
type PartageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartageDetailResponse grupo con las empresas que lo usan.
type PartageDetailResponse struct {
	PartageResponse
	RelatedCompanies []RelatedCompanyResponse `json:"related_companies"`
}
