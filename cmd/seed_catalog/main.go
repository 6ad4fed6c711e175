// seed_catalog genera el script SQL que puebla el catálogo de aseguradoras y el conjunto cerrado
// de tipos de consulta a partir de un XML de aseguradoras.
//
// Uso: go run ./cmd/seed_catalog [ruta/aseguradoras.xml]
// Por defecto busca aseguradoras.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
//
// Formato esperado:
//
//	<insurers>
//	  <insurer code="ANADOLU" active="true">
//	    <name>Anadolu Sigorta</name>
//	    <login_url>https://...</login_url>
//	  </insurer>
//	</insurers>
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sigorta-api/internal/domain/entity"
)

type insurer struct {
	Code        string
	Name        string
	LoginURL    string
	ExplorerURL string
	HomeURL     string
	Active      bool
}

func main() {
	xmlPath := "aseguradoras.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	insurers, err := parseInsurers(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, insurers); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d aseguradoras, %d tipos de consulta\n", outPath, len(insurers), len(entity.QueryTypeNames))
}

// parseInsurers lee el XML (UTF-8, ISO-8859-9 o ISO-8859-1) y devuelve las aseguradoras ordenadas
// por código. Las entradas sin código o nombre se descartan; un código repetido conserva la última.
func parseInsurers(r io.Reader) ([]insurer, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("documento vacío")
	}

	upper := cases.Upper(language.Und)
	byCode := make(map[string]insurer)
	for _, el := range root.SelectElements("insurer") {
		in := insurer{
			Code:        upper.String(strings.TrimSpace(el.SelectAttrValue("code", ""))),
			Name:        childText(el, "name"),
			LoginURL:    childText(el, "login_url"),
			ExplorerURL: childText(el, "explorer_url"),
			HomeURL:     childText(el, "home_url"),
			Active:      true,
		}
		if v := el.SelectAttrValue("active", ""); v != "" {
			active, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("aseguradora %s: active inválido %q", in.Code, v)
			}
			in.Active = active
		}
		if in.Code == "" || in.Name == "" {
			continue
		}
		byCode[in.Code] = in
	}

	out := make([]insurer, 0, len(byCode))
	for _, in := range byCode {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-9", "ISO8859-9", "LATIN5":
		return transform.NewReader(input, charmap.ISO8859_9.NewDecoder()), nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1254":
		return transform.NewReader(input, charmap.Windows1254.NewDecoder()), nil
	}
	return input, nil
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func writeSeed(w io.Writer, insurers []insurer) error {
	var b strings.Builder
	b.WriteString("-- Catálogo: tipos de consulta y aseguradoras\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	b.WriteString("-- 1. Tipos de consulta (conjunto cerrado)\n")
	b.WriteString("INSERT INTO query_types (name, description) VALUES\n")
	for i, q := range entity.QueryTypeNames {
		fmt.Fprintf(&b, "  ('%s', '%s')", q.Name, escapeSQL(q.Display))
		b.WriteString(sep(i, len(entity.QueryTypeNames)))
	}
	b.WriteString("ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description;\n\n")

	if len(insurers) > 0 {
		b.WriteString("-- 2. Aseguradoras\n")
		b.WriteString("INSERT INTO insurance_companies (code, name, login_url, explorer_url, home_url, is_active) VALUES\n")
		for i, in := range insurers {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %t)",
				escapeSQL(in.Code), escapeSQL(in.Name), escapeSQL(in.LoginURL),
				escapeSQL(in.ExplorerURL), escapeSQL(in.HomeURL), in.Active)
			b.WriteString(sep(i, len(insurers)))
		}
		b.WriteString("ON CONFLICT (code) DO UPDATE SET\n")
		b.WriteString("  name = EXCLUDED.name, login_url = EXCLUDED.login_url,\n")
		b.WriteString("  explorer_url = EXCLUDED.explorer_url, home_url = EXCLUDED.home_url,\n")
		b.WriteString("  is_active = EXCLUDED.is_active, updated_at = now();\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ",\n"
	}
	return "\n"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
