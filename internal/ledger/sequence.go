package ledger

import "slices"

// Sequence returns a chronologically ordered copy of the ledger: resolved
// month index first, due date second. The sort is stable, so records with
// an unresolved month or missing date keep their input order at the end of
// their bucket; the same input always reproduces the same sequence.
func Sequence(txs []Transaction) []Transaction {
	out := slices.Clone(txs)

	slices.SortStableFunc(out, func(a, b Transaction) int {
		if c := monthRank(a.Month) - monthRank(b.Month); c != 0 {
			return c
		}

		return compareDates(a, b)
	})

	return out
}

// monthRank sends unresolved months after every resolved one.
func monthRank(m int) int {
	if m < 0 {
		return len(Months)
	}

	return m
}

func compareDates(a, b Transaction) int {
	switch {
	case a.DueDate.IsZero() && b.DueDate.IsZero():
		return 0
	case a.DueDate.IsZero():
		return 1
	case b.DueDate.IsZero():
		return -1
	}

	return a.DueDate.Compare(b.DueDate)
}
