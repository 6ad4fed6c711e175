package dto

// LoginRequest entrada del login por empresa.
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CompanyCode string `json:"company_code"`
}

// RoleSummary resumen {id, name} de un rol.
type RoleSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CompanySummary resumen {id, name, code} de una empresa.
type CompanySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// LoginResponse salida del login: token opaco más identidad y tenant.
type LoginResponse struct {
	Token    string         `json:"token"`
	UserID   int64          `json:"user_id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Company  CompanySummary `json:"company"`
	IsAdmin  bool           `json:"is_admin"`
	Roles    []RoleSummary  `json:"roles"`
}

// MeResponse describe al llamador autenticado.
type MeResponse struct {
	UserID        int64           `json:"user_id,omitempty"`
	Username      string          `json:"username,omitempty"`
	Email         string          `json:"email,omitempty"`
	CompanyUserID int64           `json:"company_user_id,omitempty"`
	Company       *CompanySummary `json:"company,omitempty"`
	IsAdmin       bool            `json:"is_admin"`
	IsStaff       bool            `json:"is_staff"`
	Automation    bool            `json:"automation"`
	Subject       string          `json:"subject,omitempty"`
	Roles         []RoleSummary   `json:"roles"`
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
