package entity

// DashboardStats contadores del panel principal.
type DashboardStats struct {
	Companies          int
	CompanyUsers       int
	InsuranceCompanies int
	Items              int
	ActiveItems        int
	CarQueryItems      int
}
