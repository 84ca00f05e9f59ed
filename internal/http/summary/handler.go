package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

// Handler serves the scalar summary, the running balance series and the
// neighborhood rollups.
type Handler struct {
	report *aggregate.Report
}

func NewHandler(report *aggregate.Report) *Handler {
	return &Handler{report: report}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/balance", h.balance)
	r.Get("/neighborhoods", h.neighborhoods)
}

type summaryResponse struct {
	Mode           ledger.Mode `json:"mode"`
	CurrentBalance int64       `json:"current_balance"`
	TotalInvested  int64       `json:"total_invested"`
	MeanIncome     float64     `json:"mean_income"`
	SchoolCount    int         `json:"school_count"`
	UnmatchedCount int         `json:"unmatched_count"`
	FlaggedCount   int         `json:"flagged_count"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summaryResponse{
		Mode:           h.report.Mode,
		CurrentBalance: h.report.Summary.CurrentBalance,
		TotalInvested:  h.report.Summary.TotalInvested,
		MeanIncome:     h.report.MeanIncome,
		SchoolCount:    len(h.report.Schools),
		UnmatchedCount: len(h.report.Unmatched),
		FlaggedCount:   len(h.report.Flagged),
	})
}

type balancePointResponse struct {
	Date  time.Time `json:"date"`
	Delta int64     `json:"delta"`
	Total int64     `json:"total"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	resp := make([]balancePointResponse, len(h.report.Balance))
	for i, p := range h.report.Balance {
		resp[i] = balancePointResponse{Date: p.Date, Delta: p.Delta, Total: p.Total}
	}

	writeJSON(w, resp)
}

type investedRollup struct {
	Neighborhood string `json:"neighborhood"`
	Invested     int64  `json:"invested"`
}

type studentsRollup struct {
	Neighborhood string `json:"neighborhood"`
	Students     int    `json:"students"`
}

type incomeRollup struct {
	Neighborhood string  `json:"neighborhood"`
	MeanIncome   float64 `json:"mean_income"`
}

type neighborhoodsResponse struct {
	Invested []investedRollup `json:"invested"`
	Students []studentsRollup `json:"students"`
	Income   []incomeRollup   `json:"income"`
}

func (h *Handler) neighborhoods(w http.ResponseWriter, r *http.Request) {
	resp := neighborhoodsResponse{
		Invested: make([]investedRollup, len(h.report.InvestedByNeighborhood)),
		Students: make([]studentsRollup, len(h.report.StudentsByNeighborhood)),
		Income:   make([]incomeRollup, len(h.report.IncomeByNeighborhood)),
	}

	for i, n := range h.report.InvestedByNeighborhood {
		resp.Invested[i] = investedRollup{Neighborhood: n.Neighborhood, Invested: n.Invested}
	}

	for i, n := range h.report.StudentsByNeighborhood {
		resp.Students[i] = studentsRollup{Neighborhood: n.Neighborhood, Students: n.Students}
	}

	for i, n := range h.report.IncomeByNeighborhood {
		resp.Income[i] = incomeRollup{Neighborhood: n.Neighborhood, MeanIncome: n.MeanIncome}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
