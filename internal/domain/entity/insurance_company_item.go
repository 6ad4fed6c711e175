package entity

import "time"

// InsuranceCompanyItem credenciales y configuración de un par (InsuranceCompany, Company).
type InsuranceCompanyItem struct {
	ID                 int64
	InsuranceCompanyID int64
	CompanyID          int64
	PartageID          *int64
	Username           string
	Password           string
	SMSCode            string
	TOTPSecret         string
	PhoneNumber        string
	ProxyURL           string
	ProxyUsername      string
	ProxyPassword      string
	IsProxyActive      bool
	IsActive           bool
	IsCarQuery         bool
	CookieUse          bool
	Cookie             string // blob crudo heredado
	QueryTypes         []QueryType
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Cargados en lecturas de detalle.
	InsuranceCompany *InsuranceCompany
	Company          *Company
	Partage          *Partage
}

// QueryTypeNames devuelve los nombres de los tipos de consulta licenciados.
func (i *InsuranceCompanyItem) QueryTypeNames() []string {
	names := make([]string, 0, len(i.QueryTypes))
	for _, q := range i.QueryTypes {
		names = append(names, q.Name)
	}
	return names
}

// Fuentes posibles de cookies de un ítem.
const (
	CookieSourceStructured = "structured"
	CookieSourceRaw        = "raw"
	CookieSourceNone       = "none"
)

// CookieSource aplica la regla de reconciliación entre el blob crudo y los registros estructurados:
// con cookie_use activo y al menos un registro estructurado, los registros son la fuente canónica;
// en otro caso se usa el blob si no está vacío.
func (i *InsuranceCompanyItem) CookieSource(structuredCount int) string {
	if i.CookieUse && structuredCount > 0 {
		return CookieSourceStructured
	}
	if i.Cookie != "" {
		return CookieSourceRaw
	}
	return CookieSourceNone
}

// Relation tipo de relación para la búsqueda de ítems relacionados.
type Relation string

const (
	RelationCompany        Relation = "company"         // misma empresa
	RelationPartage        Relation = "partage"         // mismo grupo de reparto
	RelationPartageInsurer Relation = "partage_insurer" // mismo grupo y misma aseguradora
)

// Applies informa si la relación puede tener resultados para el ítem origen.
// Un grupo (o aseguradora) nulo produce el conjunto vacío, no un error.
func (r Relation) Applies(src *InsuranceCompanyItem) bool {
	switch r {
	case RelationCompany:
		return src.CompanyID != 0
	case RelationPartage:
		return src.PartageID != nil
	case RelationPartageInsurer:
		return src.PartageID != nil && src.InsuranceCompanyID != 0
	}
	return false
}

// RelatedItem modelo de lectura de un ítem relacionado con resúmenes de empresa, aseguradora y grupo.
type RelatedItem struct {
	ItemID        int64
	IsActive      bool
	IsProxyActive bool
	IsCarQuery    bool
	Company       Company
	Insurer       InsuranceCompany
	Partage       *Partage
}
