// Package aggregate computes the derived views the dashboards display:
// scalar balance summaries, neighborhood rollups, damage rankings and the
// running balance series. Every function is a pure reduction over the
// normalized snapshot, so the same input always yields the same output.
package aggregate

import (
	"slices"
	"time"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/reconcile"
	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

// Summary holds the headline scalars.
type Summary struct {
	// CurrentBalance is realized money only: paid entries minus paid exits.
	// Forecast transactions never move the realized balance.
	CurrentBalance int64
	// TotalInvested sums exit amounts under the mode in force.
	TotalInvested int64
}

// Summarize reduces the ledger to its headline scalars. Flagged amounts and
// unknown directions are excluded here and counted by Audit instead.
func Summarize(txs []ledger.Transaction, mode ledger.Mode) Summary {
	var s Summary

	for _, tx := range txs {
		if !tx.Countable() {
			continue
		}

		if tx.Status == ledger.StatusPaid {
			switch tx.Direction {
			case ledger.DirectionEntry:
				s.CurrentBalance += tx.Amount
			case ledger.DirectionExit:
				s.CurrentBalance -= tx.Amount
			}
		}

		if tx.Direction == ledger.DirectionExit && mode.Includes(tx.Status) {
			s.TotalInvested += tx.Amount
		}
	}

	return s
}

// BalancePoint is one step of the running balance: Total is the balance
// after applying Delta, the pre-summed movement of that date.
type BalancePoint struct {
	Date  time.Time
	Delta int64
	Total int64
}

// BalanceSeries builds the realized running balance over due dates. Deltas
// sharing a date are summed before the cumulative step, so each distinct
// date appears exactly once and dates are strictly increasing. Records
// without a parseable date cannot be placed on the axis and are left out.
func BalanceSeries(txs []ledger.Transaction) []BalancePoint {
	deltas := make(map[time.Time]int64)

	for _, tx := range txs {
		if !tx.Countable() || tx.Status != ledger.StatusPaid || tx.DueDate.IsZero() {
			continue
		}

		if tx.Direction == ledger.DirectionEntry {
			deltas[tx.DueDate] += tx.Amount
		} else {
			deltas[tx.DueDate] -= tx.Amount
		}
	}

	dates := make([]time.Time, 0, len(deltas))
	for d := range deltas {
		dates = append(dates, d)
	}

	slices.SortFunc(dates, time.Time.Compare)

	series := make([]BalancePoint, 0, len(dates))

	var total int64
	for _, d := range dates {
		total += deltas[d]
		series = append(series, BalancePoint{Date: d, Delta: deltas[d], Total: total})
	}

	return series
}

// NeighborhoodInvestment is the invested total of one neighborhood.
type NeighborhoodInvestment struct {
	Neighborhood string
	Invested     int64
}

// InvestedByNeighborhood rolls reconciled schools up by neighborhood,
// keeping first-seen registry order.
func InvestedByNeighborhood(schools []reconcile.School) []NeighborhoodInvestment {
	idx := make(map[string]int)

	var out []NeighborhoodInvestment

	for _, s := range schools {
		i, ok := idx[s.Neighborhood]
		if !ok {
			i = len(out)
			idx[s.Neighborhood] = i
			out = append(out, NeighborhoodInvestment{Neighborhood: s.Neighborhood})
		}

		out[i].Invested += s.Invested
	}

	return out
}

// NeighborhoodStudents is the enrollment total of one neighborhood.
type NeighborhoodStudents struct {
	Neighborhood string
	Students     int
}

// StudentsByNeighborhood sums enrolled students per neighborhood.
func StudentsByNeighborhood(schools []registry.School) []NeighborhoodStudents {
	idx := make(map[string]int)

	var out []NeighborhoodStudents

	for _, s := range schools {
		i, ok := idx[s.Neighborhood]
		if !ok {
			i = len(out)
			idx[s.Neighborhood] = i
			out = append(out, NeighborhoodStudents{Neighborhood: s.Neighborhood})
		}

		out[i].Students += s.Students
	}

	return out
}

// NeighborhoodIncome is the mean household income of one neighborhood,
// in minimum wages.
type NeighborhoodIncome struct {
	Neighborhood string
	MeanIncome   float64
}

// IncomeByNeighborhood averages household income per neighborhood.
func IncomeByNeighborhood(schools []registry.School) []NeighborhoodIncome {
	type acc struct {
		sum float64
		n   int
	}

	idx := make(map[string]int)

	var (
		order []string
		accs  []acc
	)

	for _, s := range schools {
		i, ok := idx[s.Neighborhood]
		if !ok {
			i = len(accs)
			idx[s.Neighborhood] = i
			order = append(order, s.Neighborhood)
			accs = append(accs, acc{})
		}

		accs[i].sum += s.Income
		accs[i].n++
	}

	out := make([]NeighborhoodIncome, len(order))
	for i, name := range order {
		out[i] = NeighborhoodIncome{Neighborhood: name, MeanIncome: accs[i].sum / float64(accs[i].n)}
	}

	return out
}

// MeanIncome averages household income over the whole registry.
// Returns 0 for an empty registry.
func MeanIncome(schools []registry.School) float64 {
	if len(schools) == 0 {
		return 0
	}

	var sum float64
	for _, s := range schools {
		sum += s.Income
	}

	return sum / float64(len(schools))
}

// TopByDamage returns the n schools with the highest estimated damage,
// stable descending so registry order breaks ties.
func TopByDamage(schools []registry.School, n int) []registry.School {
	ranked := slices.Clone(schools)

	slices.SortStableFunc(ranked, func(a, b registry.School) int {
		switch {
		case a.EstimatedDamage > b.EstimatedDamage:
			return -1
		case a.EstimatedDamage < b.EstimatedDamage:
			return 1
		}

		return 0
	})

	if n < 0 {
		n = 0
	}

	return ranked[:min(n, len(ranked))]
}
