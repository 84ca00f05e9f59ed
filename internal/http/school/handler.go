package school

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
)

// Handler serves the reconciled school views from a finished report.
// The report is immutable, so handlers are read-only and lock-free.
type Handler struct {
	report *aggregate.Report
}

func NewHandler(report *aggregate.Report) *Handler {
	return &Handler{report: report}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/top", h.top)
	r.Get("/unmatched", h.unmatched)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, toResponseList(h.report.Schools))
}

func (h *Handler) top(w http.ResponseWriter, r *http.Request) {
	resp := make([]topSchoolResponse, len(h.report.TopDamage))
	for i, s := range h.report.TopDamage {
		resp[i] = topSchoolResponse{
			Name:            s.RawName,
			Neighborhood:    s.Neighborhood,
			EstimatedDamage: s.EstimatedDamage,
			Students:        s.Students,
		}
	}

	writeJSON(w, resp)
}

func (h *Handler) unmatched(w http.ResponseWriter, r *http.Request) {
	resp := make([]unmatchedResponse, len(h.report.Unmatched))
	for i, u := range h.report.Unmatched {
		resp[i] = unmatchedResponse{School: u.School, Paid: u.Paid, Forecast: u.Forecast}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
