package entity

import (
	"strings"
	"time"
)

// SameSite valores admitidos (coinciden con el entero persistido).
type SameSite int

const (
	SameSiteNone SameSite = iota
	SameSiteLax
	SameSiteStrict
)

// Priority prioridad de la cookie del navegador.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Valid informa si el valor está dentro del rango admitido.
func (s SameSite) Valid() bool { return s >= SameSiteNone && s <= SameSiteStrict }

// Valid informa si el valor está dentro del rango admitido.
func (p Priority) Valid() bool { return p >= PriorityLow && p <= PriorityHigh }

// InsuranceCompanyCookie cookie estructurada de un ítem. (ItemID, Name, Domain) es único.
type InsuranceCompanyCookie struct {
	ID         int64
	ItemID     int64
	Name       string
	Value      string
	Domain     string
	Path       string
	Expires    *time.Time
	Creation   *time.Time
	LastAccess *time.Time
	HTTPOnly   bool
	Secure     bool
	SameSite   SameSite
	Priority   Priority
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var sameSiteByName = map[string]SameSite{"none": SameSiteNone, "lax": SameSiteLax, "strict": SameSiteStrict}

var priorityByName = map[string]Priority{"low": PriorityLow, "medium": PriorityMedium, "high": PriorityHigh}

// ParseSameSite acepta None/Lax/Strict sin distinguir mayúsculas. Vacío equivale a None.
func ParseSameSite(s string) (SameSite, bool) {
	if s == "" {
		return SameSiteNone, true
	}
	v, ok := sameSiteByName[strings.ToLower(s)]
	return v, ok
}

// ParsePriority acepta Low/Medium/High sin distinguir mayúsculas. Vacío equivale a Low.
func ParsePriority(s string) (Priority, bool) {
	if s == "" {
		return PriorityLow, true
	}
	v, ok := priorityByName[strings.ToLower(s)]
	return v, ok
}
