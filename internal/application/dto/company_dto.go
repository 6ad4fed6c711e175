package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (tenant).
type CreateCompanyRequest struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	UserLimit *int       `json:"user_limit"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
// ClearExpiresAt quita el vencimiento.
type UpdateCompanyRequest struct {
	Name           *string    `json:"name"`
	Code           *string    `json:"code"`
	UserLimit      *int       `json:"user_limit"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
	ClearExpiresAt bool       `json:"clear_expires_at"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	UserLimit int        `json:"user_limit"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
