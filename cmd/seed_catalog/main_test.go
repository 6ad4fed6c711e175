package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseInsurers_UTF8(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<insurers>
  <insurer code="zurich"><name>Zurich Sigorta</name><login_url>https://z.example</login_url></insurer>
  <insurer code="ANADOLU" active="false"><name>Anadolu Sigorta</name></insurer>
  <insurer code=""><name>Sin código</name></insurer>
  <insurer code="EMPTY"/>
</insurers>`

	got, err := parseInsurers(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "ANADOLU", got[0].Code)
	assert.False(t, got[0].Active)
	assert.Equal(t, "ZURICH", got[1].Code)
	assert.True(t, got[1].Active)
	assert.Equal(t, "https://z.example", got[1].LoginURL)
}

func TestParseInsurers_ISO88599(t *testing.T) {
	body := `<?xml version="1.0" encoding="ISO-8859-9"?>
<insurers><insurer code="gunes"><name>Güneş Sigorta Şirketi</name></insurer></insurers>`
	encoded, err := charmap.ISO8859_9.NewEncoder().String(body)
	require.NoError(t, err)

	got, err := parseInsurers(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Güneş Sigorta Şirketi", got[0].Name)
	assert.Equal(t, "GUNES", got[0].Code)
}

func TestParseInsurers_ActiveInvalido(t *testing.T) {
	_, err := parseInsurers(strings.NewReader(`<insurers><insurer code="A" active="quizás"><name>A</name></insurer></insurers>`))
	assert.Error(t, err)
}

func TestWriteSeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSeed(&buf, []insurer{{Code: "AXA", Name: "AXA O'Sigorta", Active: true}}))

	sql := buf.String()
	assert.Contains(t, sql, "('traffic', 'Trafik Sigortası'),")
	assert.Contains(t, sql, "('other', 'Diğer')\nON CONFLICT (name)")
	assert.Contains(t, sql, "('AXA', 'AXA O''Sigorta', '', '', '', true)\nON CONFLICT (code)")
}
