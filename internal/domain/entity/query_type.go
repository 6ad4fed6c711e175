package entity

// Tipos de consulta válidos (deben coincidir con el CHECK de la tabla query_types).
const (
	QueryTypeTraffic   = "traffic"
	QueryTypeCasco     = "casco"
	QueryTypeHealth    = "health"
	QueryTypeLife      = "life"
	QueryTypeTravel    = "travel"
	QueryTypeHome      = "home"
	QueryTypeWorkplace = "workplace"
	QueryTypeOther     = "other"
)

// QueryTypeNames conjunto cerrado en orden de presentación, con su etiqueta visible.
var QueryTypeNames = []struct {
	Name    string
	Display string
}{
	{QueryTypeTraffic, "Trafik Sigortası"},
	{QueryTypeCasco, "Kasko"},
	{QueryTypeHealth, "Sağlık Sigortası"},
	{QueryTypeLife, "Hayat Sigortası"},
	{QueryTypeTravel, "Seyahat Sigortası"},
	{QueryTypeHome, "Konut Sigortası"},
	{QueryTypeWorkplace, "İşyeri Sigortası"},
	{QueryTypeOther, "Diğer"},
}

// QueryType categoría de producto de seguro que condiciona los permisos.
type QueryType struct {
	ID          int64
	Name        string
	Description string
}

// IsValidQueryTypeName informa si name pertenece al conjunto cerrado.
func IsValidQueryTypeName(name string) bool {
	return QueryTypeDisplay(name) != ""
}

// QueryTypeDisplay devuelve la etiqueta visible o "" si name no es válido.
func QueryTypeDisplay(name string) string {
	for _, q := range QueryTypeNames {
		if q.Name == name {
			return q.Display
		}
	}
	return ""
}
