// Package registry holds the master list of schools the ledger is
// reconciled against. The registry is loaded once per run and immutable
// afterwards.
package registry

import (
	"strconv"
	"strings"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/money"
)

// School is one master-registry entity. Name is the join key, normalized
// the same way ledger school names are.
type School struct {
	Name            string
	RawName         string
	Latitude        float64
	Longitude       float64
	Neighborhood    string
	EstimatedDamage int64 // cents
	Students        int
	Income          float64 // mean household income, in minimum wages
}

// aliases for the registry columns, same resolution rule as the ledger side.
var aliases = map[string][]string{
	"name":         {"NOME", "ESCOLA"},
	"latitude":     {"LATITUDE", "LAT"},
	"longitude":    {"LONGITUDE", "LON", "LNG"},
	"neighborhood": {"BAIRRO"},
	"damage":       {"VALOR ESTIMADO"},
	"students":     {"NUM ALUNOS", "ALUNOS"},
	"income":       {"RENDA_MEDIA_DOMICILIO_SM", "RENDA MEDIA"},
}

// FromRows builds the school set from raw registry rows. Rows without a
// usable name are skipped (footer noise). Estimated damage and student
// counts that fail to parse are filled with the mean of the column, so one
// dirty cell never hides a school from the damage and enrollment views.
func FromRows(rows []map[string]string) []School {
	schools := make([]School, 0, len(rows))

	var (
		missingDamage   []int
		missingStudents []int
	)

	for _, row := range rows {
		cols := foldKeys(row)

		raw := get(cols, "name")
		if raw == "" {
			continue
		}

		s := School{
			Name:         ledger.NormalizeName(raw),
			RawName:      raw,
			Neighborhood: strings.TrimSpace(get(cols, "neighborhood")),
		}

		s.Latitude, _ = strconv.ParseFloat(get(cols, "latitude"), 64)
		s.Longitude, _ = strconv.ParseFloat(get(cols, "longitude"), 64)
		s.Income, _ = strconv.ParseFloat(get(cols, "income"), 64)

		if cents, ok := money.Parse(get(cols, "damage")); ok {
			s.EstimatedDamage = cents
		} else {
			missingDamage = append(missingDamage, len(schools))
		}

		if n, err := strconv.Atoi(strings.TrimSpace(get(cols, "students"))); err == nil {
			s.Students = n
		} else {
			missingStudents = append(missingStudents, len(schools))
		}

		schools = append(schools, s)
	}

	fillDamageMean(schools, missingDamage)
	fillStudentsMean(schools, missingStudents)

	return schools
}

func fillDamageMean(schools []School, missing []int) {
	present := len(schools) - len(missing)
	if present <= 0 || len(missing) == 0 {
		return
	}

	var sum int64
	for _, s := range schools {
		sum += s.EstimatedDamage
	}

	mean := sum / int64(present)
	for _, i := range missing {
		schools[i].EstimatedDamage = mean
	}
}

func fillStudentsMean(schools []School, missing []int) {
	present := len(schools) - len(missing)
	if present <= 0 || len(missing) == 0 {
		return
	}

	sum := 0
	for _, s := range schools {
		sum += s.Students
	}

	mean := sum / present
	for _, i := range missing {
		schools[i].Students = mean
	}
}

func foldKeys(row map[string]string) map[string]string {
	cols := make(map[string]string, len(row))

	for k, v := range row {
		key := strings.ToUpper(strings.TrimSpace(k))
		if _, exists := cols[key]; !exists {
			cols[key] = strings.TrimSpace(v)
		}
	}

	return cols
}

func get(cols map[string]string, field string) string {
	for _, alias := range aliases[field] {
		if v, ok := cols[alias]; ok {
			return v
		}
	}

	return ""
}
