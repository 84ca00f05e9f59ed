package school

import (
	"math"

	"github.com/dfcarvalho/caixa-escolar/internal/reconcile"
)

type schoolResponse struct {
	Name            string  `json:"name"`
	Neighborhood    string  `json:"neighborhood"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	EstimatedDamage int64   `json:"estimated_damage"`
	Students        int     `json:"students"`
	Income          float64 `json:"income"`
	Paid            int64   `json:"paid"`
	Forecast        int64   `json:"forecast"`
	Invested        int64   `json:"invested"`
	// InvestedPct is null when the registry has no damage estimate:
	// JSON has no NaN.
	InvestedPct *float64 `json:"invested_pct"`
}

type topSchoolResponse struct {
	Name            string `json:"name"`
	Neighborhood    string `json:"neighborhood"`
	EstimatedDamage int64  `json:"estimated_damage"`
	Students        int    `json:"students"`
}

type unmatchedResponse struct {
	School   string `json:"school"`
	Paid     int64  `json:"paid"`
	Forecast int64  `json:"forecast"`
}

func toResponse(s reconcile.School) schoolResponse {
	resp := schoolResponse{
		Name:            s.RawName,
		Neighborhood:    s.Neighborhood,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
		EstimatedDamage: s.EstimatedDamage,
		Students:        s.Students,
		Income:          s.Income,
		Paid:            s.Paid,
		Forecast:        s.Forecast,
		Invested:        s.Invested,
	}

	if !math.IsNaN(s.InvestedPct) {
		pct := s.InvestedPct
		resp.InvestedPct = &pct
	}

	return resp
}

func toResponseList(schools []reconcile.School) []schoolResponse {
	resp := make([]schoolResponse, len(schools))
	for i, s := range schools {
		resp[i] = toResponse(s)
	}

	return resp
}
