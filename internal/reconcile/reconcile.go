// Package reconcile joins the school master registry against aggregated
// ledger totals keyed by normalized school name.
package reconcile

import (
	"math"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

// School is a registry school together with its reconciled exit totals.
// Paid and Forecast stay separate so both remain independently visible;
// Invested applies the aggregation mode in force.
type School struct {
	registry.School
	Paid     int64
	Forecast int64
	Invested int64
	// InvestedPct is Invested over EstimatedDamage in percent.
	// NaN when the registry carries no damage estimate.
	InvestedPct float64
}

// Unmatched is a ledger school name with no registry counterpart. These are
// surfaced rather than dropped so registry/ledger drift is operator-visible.
type Unmatched struct {
	School   string
	Paid     int64
	Forecast int64
}

// Result is one full reconciliation pass. Schools preserves the registry's
// original order and contains every registry school exactly once; schools
// without matching ledger rows are zero-filled, not omitted.
type Result struct {
	Schools   []School
	Unmatched []Unmatched
}

type totals struct {
	paid     int64
	forecast int64
}

// Run reconciles the registry against the classified ledger. Only countable
// exit transactions contribute: entries are balance movements, not
// investment, and flagged amounts or unknown directions never reach a sum.
func Run(schools []registry.School, txs []ledger.Transaction, mode ledger.Mode) Result {
	perSchool := make(map[string]totals)
	order := make([]string, 0)

	for _, tx := range txs {
		if !tx.Countable() {
			continue
		}

		// Every countable school name participates in the join, so an
		// entry-only school missing from the registry still surfaces as
		// unmatched. Only exits contribute to the investment totals.
		t, seen := perSchool[tx.School]
		if !seen {
			order = append(order, tx.School)
		}

		if tx.Direction == ledger.DirectionExit {
			if tx.Status == ledger.StatusPaid {
				t.paid += tx.Amount
			} else {
				t.forecast += tx.Amount
			}
		}

		perSchool[tx.School] = t
	}

	res := Result{Schools: make([]School, 0, len(schools))}

	for _, s := range schools {
		t := perSchool[s.Name]
		delete(perSchool, s.Name)

		res.Schools = append(res.Schools, School{
			School:      s,
			Paid:        t.paid,
			Forecast:    t.forecast,
			Invested:    invested(t, mode),
			InvestedPct: pct(invested(t, mode), s.EstimatedDamage),
		})
	}

	// Whatever is left never matched a registry name. Ledger grouping order
	// keeps the output deterministic.
	for _, name := range order {
		t, ok := perSchool[name]
		if !ok {
			continue
		}

		res.Unmatched = append(res.Unmatched, Unmatched{
			School:   name,
			Paid:     t.paid,
			Forecast: t.forecast,
		})
	}

	return res
}

func invested(t totals, mode ledger.Mode) int64 {
	if mode == ledger.ModePaidPlusForecast {
		return t.paid + t.forecast
	}

	return t.paid
}

func pct(invested, damage int64) float64 {
	if damage == 0 {
		return math.NaN()
	}

	return float64(invested) / float64(damage) * 100
}
