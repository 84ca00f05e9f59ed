package aggregate

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/reconcile"
	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

// Report is one complete reconciliation run: every derived view computed
// from the same immutable snapshot of registry and ledger.
type Report struct {
	Mode    ledger.Mode
	Summary Summary

	Schools   []reconcile.School
	Unmatched []reconcile.Unmatched

	Balance []BalancePoint

	InvestedByNeighborhood []NeighborhoodInvestment
	StudentsByNeighborhood []NeighborhoodStudents
	IncomeByNeighborhood   []NeighborhoodIncome
	MeanIncome             float64

	TopDamage []registry.School

	Flagged []ledger.Transaction
}

// Run validates the mode, then computes every aggregate. The aggregates are
// independent pure reductions over inputs nobody mutates, so they run
// concurrently without locking.
func Run(schools []registry.School, txs []ledger.Transaction, mode ledger.Mode, topN int) (*Report, error) {
	mode, err := ledger.ParseMode(string(mode))
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	if topN <= 0 {
		return nil, fmt.Errorf("aggregate: top-N must be positive, got %d", topN)
	}

	r := &Report{Mode: mode}

	var g errgroup.Group

	g.Go(func() error {
		r.Summary = Summarize(txs, mode)
		return nil
	})

	g.Go(func() error {
		res := reconcile.Run(schools, txs, mode)
		r.Schools = res.Schools
		r.Unmatched = res.Unmatched
		r.InvestedByNeighborhood = InvestedByNeighborhood(res.Schools)
		return nil
	})

	g.Go(func() error {
		r.Balance = BalanceSeries(txs)
		return nil
	})

	g.Go(func() error {
		r.StudentsByNeighborhood = StudentsByNeighborhood(schools)
		r.IncomeByNeighborhood = IncomeByNeighborhood(schools)
		r.MeanIncome = MeanIncome(schools)
		r.TopDamage = TopByDamage(schools, topN)
		return nil
	})

	g.Go(func() error {
		r.Flagged = flagged(txs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return r, nil
}

// flagged collects the records excluded from one or more sums, kept for
// audit listing instead of silently vanishing.
func flagged(txs []ledger.Transaction) []ledger.Transaction {
	var out []ledger.Transaction

	for _, tx := range txs {
		if tx.Flags != 0 {
			out = append(out, tx)
		}
	}

	return out
}
