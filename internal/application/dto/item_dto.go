package dto

import "time"

// ItemRequest entrada completa para crear o actualizar un ítem de credenciales.
// CompanyID lo fija el tenant del llamador salvo para el personal de back-office.
type ItemRequest struct {
	InsuranceCompanyID int64   `json:"insurance_company"`
	CompanyID          int64   `json:"company"`
	PartageID          *int64  `json:"partage"`
	Username           string  `json:"username"`
	Password           string  `json:"password"`
	SMSCode            string  `json:"sms_code"`
	TOTPSecret         string  `json:"totp_secret"`
	PhoneNumber        string  `json:"phone_number"`
	ProxyURL           string  `json:"proxy_url"`
	ProxyUsername      string  `json:"proxy_username"`
	ProxyPassword      string  `json:"proxy_password"`
	IsProxyActive      bool    `json:"is_proxy_active"`
	IsActive           *bool   `json:"is_active"`
	IsCarQuery         bool    `json:"is_car_query"`
	CookieUse          bool    `json:"cookie_use"`
	Cookie             string  `json:"cookie"`
	QueryTypeIDs       []int64 `json:"query_types"`
}

// ItemResponse salida de un ítem. Incluye las credenciales: el consumidor es el crawler.
type ItemResponse struct {
	ID               int64               `json:"id"`
	InsuranceCompany InsurerSummary      `json:"insurance_company"`
	Company          CompanySummary      `json:"company"`
	Partage          *PartageSummary     `json:"partage"`
	Username         string              `json:"username"`
	Password         string              `json:"password"`
	SMSCode          string              `json:"sms_code"`
	TOTPSecret       string              `json:"totp_secret"`
	PhoneNumber      string              `json:"phone_number"`
	ProxyURL         string              `json:"proxy_url"`
	ProxyUsername    string              `json:"proxy_username"`
	ProxyPassword    string              `json:"proxy_password"`
	IsProxyActive    bool                `json:"is_proxy_active"`
	IsActive         bool                `json:"is_active"`
	IsCarQuery       bool                `json:"is_car_query"`
	CookieUse        bool                `json:"cookie_use"`
	Cookie           string              `json:"cookie"`
	QueryTypes       []QueryTypeResponse `json:"query_types"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ItemDetailResponse ítem con sus cookies estructuradas y la fuente canónica de cookies.
type ItemDetailResponse struct {
	ItemResponse
	Cookies      []CookieResponse `json:"cookies"`
	CookieSource string           `json:"cookie_source"`
}

// RelatedItemResponse ítem relacionado (misma empresa o mismo grupo y aseguradora).
type RelatedItemResponse struct {
	ID               int64           `json:"id"`
	Company          CompanySummary  `json:"company"`
	InsuranceCompany InsurerSummary  `json:"insurance_company"`
	Partage          *PartageSummary `json:"partage"`
	IsActive         bool            `json:"is_active"`
	IsProxyActive    bool            `json:"is_proxy_active"`
	IsCarQuery       bool            `json:"is_car_query"`
}

// RelatedCompanyResponse vista centrada en la empresa de un ítem que comparte grupo.
type RelatedCompanyResponse struct {
	ID                     int64           `json:"id"`
	Name                   string          `json:"name"`
	Code                   string          `json:"code"`
	InsuranceCompany       InsurerSummary  `json:"insurance_company"`
	InsuranceCompanyItemID int64           `json:"insurance_company_item_id"`
	Partage                *PartageSummary `json:"partage,omitempty"`
}

// BulkUpdatePartageRequest cuerpo de bulk_update_partage.
type BulkUpdatePartageRequest struct {
	ItemIDs   []int64 `json:"item_ids"`
	PartageID int64   `json:"partage"`
}

// BulkUpdatePartageResponse salida de bulk_update_partage.
type BulkUpdatePartageResponse struct {
	Message      string         `json:"message"`
	UpdatedCount int64          `json:"updated_count"`
	Partage      PartageSummary `json:"partage"`
}

// UpdatePartageRequest cuerpo de update_partage_only.
type UpdatePartageRequest struct {
	PartageID int64 `json:"partage"`
}

// UpdatePartageResponse salida de update_partage_only.
type UpdatePartageResponse struct {
	Message string         `json:"message"`
	ItemID  int64          `json:"item_id"`
	Partage PartageSummary `json:"partage"`
}

// UpdateCookieRequest cuerpo de update_cookie. Cookie nil es entrada inválida; "" vacía el blob.
type UpdateCookieRequest struct {
	Cookie *string `json:"cookie"`
}

// UpdateCookieResponse salida de update_cookie.
type UpdateCookieResponse struct {
	Message      string `json:"message"`
	ItemID       int64  `json:"item_id"`
	CookieLength int    `json:"cookie_length"`
}

// ItemQueryTypeRequest cuerpo de add_query_type / remove_query_type.
type ItemQueryTypeRequest struct {
	QueryTypeID int64 `json:"query_type_id"`
}

// CookieRequest entrada de una cookie estructurada.
type CookieRequest struct {
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Domain     string     `json:"domain"`
	Path       string     `json:"path"`
	Expires    *time.Time `json:"expires"`
	Creation   *time.Time `json:"creation"`
	LastAccess *time.Time `json:"last_access"`
	HTTPOnly   bool       `json:"http_only"`
	Secure     bool       `json:"secure"`
	SameSite   string     `json:"same_site"` // None | Lax | Strict
	Priority   string     `json:"priority"`  // Low | Medium | High
}

// ReplaceCookiesRequest sustituye todas las cookies estructuradas de un ítem.
type ReplaceCookiesRequest struct {
	Cookies []CookieRequest `json:"cookies"`
}

// CookieResponse salida de una cookie estructurada.
type CookieResponse struct {
	ID         int64      `json:"id"`
	ItemID     int64      `json:"insurance_company_item"`
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Domain     string     `json:"domain"`
	Path       string     `json:"path"`
	Expires    *time.Time `json:"expires"`
	Creation   *time.Time `json:"creation"`
	LastAccess *time.Time `json:"last_access"`
	HTTPOnly   bool       `json:"http_only"`
	Secure     bool       `json:"secure"`
	SameSite   string     `json:"same_site"`
	Priority   string     `json:"priority"`
}
