package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

func TestFromRows(t *testing.T) {
	rows := []map[string]string{
		{
			"NOME":                     "  EMEI Vila Nova ",
			"Latitude":                 "-30.0277",
			"Longitude":                "-51.2287",
			"Bairro":                   "Sarandi",
			"VALOR ESTIMADO":           "R$ 150.000,00",
			"NUM ALUNOS":               "120",
			"renda_media_domicilio_sm": "2.5",
		},
	}

	schools := registry.FromRows(rows)
	require.Len(t, schools, 1)

	s := schools[0]
	assert.Equal(t, "EMEI VILA NOVA", s.Name)
	assert.Equal(t, "EMEI Vila Nova", s.RawName)
	assert.InDelta(t, -30.0277, s.Latitude, 1e-9)
	assert.InDelta(t, -51.2287, s.Longitude, 1e-9)
	assert.Equal(t, "Sarandi", s.Neighborhood)
	assert.Equal(t, int64(15000000), s.EstimatedDamage)
	assert.Equal(t, 120, s.Students)
	assert.InDelta(t, 2.5, s.Income, 1e-9)
}

func TestFromRows_CommaGroupedDamage(t *testing.T) {
	// Some municipal exports group thousands with commas and omit cents.
	rows := []map[string]string{
		{"NOME": "A", "VALOR ESTIMADO": " R$ 150,000 "},
	}

	schools := registry.FromRows(rows)
	require.Len(t, schools, 1)
	assert.Equal(t, int64(15000000), schools[0].EstimatedDamage)
}

func TestFromRows_MeanFillForMissingNumbers(t *testing.T) {
	rows := []map[string]string{
		{"NOME": "A", "VALOR ESTIMADO": "1.000,00", "NUM ALUNOS": "100"},
		{"NOME": "B", "VALOR ESTIMADO": "3.000,00", "NUM ALUNOS": "200"},
		{"NOME": "C", "VALOR ESTIMADO": " -", "NUM ALUNOS": "n/d"},
	}

	schools := registry.FromRows(rows)
	require.Len(t, schools, 3)

	assert.Equal(t, int64(200000), schools[2].EstimatedDamage, "mean of the parsed column")
	assert.Equal(t, 150, schools[2].Students)
}

func TestFromRows_SkipsNamelessRows(t *testing.T) {
	rows := []map[string]string{
		{"NOME": "", "VALOR ESTIMADO": "1,00"},
		{"Bairro": "Centro"},
		{"NOME": "A"},
	}

	schools := registry.FromRows(rows)
	require.Len(t, schools, 1)
	assert.Equal(t, "A", schools[0].Name)
}
