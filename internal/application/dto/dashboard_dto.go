package dto

import "time"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Conteos del tenant del llamador; el personal de back-office ve el total global.
type DashboardStatsDTO struct {
	Companies          int `json:"companies"`
	CompanyUsers       int `json:"company_users"`
	InsuranceCompanies int `json:"insurance_companies"`

	// Ítems de credenciales
	Items         int `json:"items"`
	ActiveItems   int `json:"active_items"`
	CarQueryItems int `json:"car_query_items"`

	Scope       string    `json:"scope"` // "global" | "company"
	GeneratedAt time.Time `json:"generated_at"`
}
