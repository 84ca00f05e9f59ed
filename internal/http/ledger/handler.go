package ledger

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

// Handler serves the chronologically sequenced ledger in fixed-size pages,
// plus the audit listing of flagged records.
type Handler struct {
	sequenced []ledger.Transaction
	flagged   []ledger.Transaction
	pageSize  int
}

// NewHandler takes the already-sequenced ledger and a validated page size.
func NewHandler(sequenced, flagged []ledger.Transaction, pageSize int) *Handler {
	return &Handler{sequenced: sequenced, flagged: flagged, pageSize: pageSize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/flagged", h.listFlagged)
}

type pageResponse struct {
	Page      int                   `json:"page"`
	PageCount int                   `json:"page_count"`
	Total     int                   `json:"total"`
	Records   []transactionResponse `json:"records"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := 0
	pageCount := ledger.PageCount(len(h.sequenced), h.pageSize)

	if s := r.URL.Query().Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "page must be a non-negative integer", http.StatusBadRequest)
			return
		}

		// Page 0 of an empty ledger is the one valid empty page.
		if n >= pageCount && n > 0 {
			http.Error(w, "page out of range", http.StatusBadRequest)
			return
		}

		page = n
	}

	writeJSON(w, pageResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     len(h.sequenced),
		Records:   toResponseList(ledger.Page(h.sequenced, h.pageSize, page)),
	})
}

func (h *Handler) listFlagged(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, toResponseList(h.flagged))
}

type transactionResponse struct {
	ID         uuid.UUID        `json:"id"`
	School     string           `json:"school"`
	Amount     int64            `json:"amount"`
	Direction  ledger.Direction `json:"direction"`
	Status     ledger.Status    `json:"status"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	MonthLabel string           `json:"month_label,omitempty"`
	Month      int              `json:"month"`
	Category   string           `json:"category,omitempty"`
	Item       string           `json:"item,omitempty"`
	Provider   string           `json:"provider,omitempty"`
	Flags      []string         `json:"flags,omitempty"`
}

func toResponse(tx ledger.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:         tx.ID,
		School:     tx.RawSchool,
		Amount:     tx.Amount,
		Direction:  tx.Direction,
		Status:     tx.Status,
		MonthLabel: tx.MonthLabel,
		Month:      tx.Month,
		Category:   tx.Category,
		Item:       tx.Item,
		Provider:   tx.Provider,
		Flags:      flagNames(tx.Flags),
	}

	if !tx.DueDate.IsZero() {
		due := tx.DueDate
		resp.DueDate = &due
	}

	return resp
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func flagNames(f ledger.Flag) []string {
	var names []string

	for _, fl := range []struct {
		mask ledger.Flag
		name string
	}{
		{ledger.FlagBadAmount, "bad_amount"},
		{ledger.FlagBadDate, "bad_date"},
		{ledger.FlagBadMonth, "bad_month"},
		{ledger.FlagNoDirection, "no_direction"},
	} {
		if f.Has(fl.mask) {
			names = append(names, fl.name)
		}
	}

	return names
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
