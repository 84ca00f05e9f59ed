package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfcarvalho/caixa-escolar/internal/aggregate"
	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
	"github.com/dfcarvalho/caixa-escolar/internal/registry"
)

func day(d int) time.Time {
	return time.Date(2024, 9, d, 0, 0, 0, 0, time.UTC)
}

func tx(dir ledger.Direction, status ledger.Status, cents int64) ledger.Transaction {
	return ledger.Transaction{Direction: dir, Status: status, Amount: cents}
}

func TestSummarize(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.DirectionEntry, ledger.StatusPaid, 100000),
		tx(ledger.DirectionExit, ledger.StatusPaid, 40000),
		tx(ledger.DirectionExit, ledger.StatusForecast, 999900),
	}

	paidOnly := aggregate.Summarize(txs, ledger.ModePaidOnly)
	assert.Equal(t, int64(60000), paidOnly.CurrentBalance)
	assert.Equal(t, int64(40000), paidOnly.TotalInvested)

	both := aggregate.Summarize(txs, ledger.ModePaidPlusForecast)
	assert.Equal(t, int64(60000), both.CurrentBalance, "forecast never moves realized balance")
	assert.Equal(t, int64(1039900), both.TotalInvested)
}

func TestSummarize_ExcludesFlaggedAndUnknownDirection(t *testing.T) {
	txs := []ledger.Transaction{
		tx(ledger.DirectionEntry, ledger.StatusPaid, 1000),
		{Direction: ledger.DirectionExit, Status: ledger.StatusPaid, Amount: 500, Flags: ledger.FlagBadAmount},
		{Direction: ledger.DirectionUnknown, Status: ledger.StatusPaid, Amount: 500, Flags: ledger.FlagNoDirection},
	}

	s := aggregate.Summarize(txs, ledger.ModePaidOnly)
	assert.Equal(t, int64(1000), s.CurrentBalance)
	assert.Equal(t, int64(0), s.TotalInvested)
}

func TestBalanceSeries(t *testing.T) {
	txs := []ledger.Transaction{
		{Direction: ledger.DirectionEntry, Status: ledger.StatusPaid, Amount: 100, DueDate: day(10)},
		{Direction: ledger.DirectionExit, Status: ledger.StatusPaid, Amount: 30, DueDate: day(10)},
		{Direction: ledger.DirectionExit, Status: ledger.StatusPaid, Amount: 20, DueDate: day(5)},
		{Direction: ledger.DirectionExit, Status: ledger.StatusForecast, Amount: 9999, DueDate: day(1)},
		{Direction: ledger.DirectionEntry, Status: ledger.StatusPaid, Amount: 7}, // no date
	}

	series := aggregate.BalanceSeries(txs)
	require.Len(t, series, 2)

	// Same-date deltas pre-summed: one point per distinct date.
	assert.Equal(t, day(5), series[0].Date)
	assert.Equal(t, int64(-20), series[0].Delta)
	assert.Equal(t, int64(-20), series[0].Total)

	assert.Equal(t, day(10), series[1].Date)
	assert.Equal(t, int64(70), series[1].Delta)
	assert.Equal(t, int64(50), series[1].Total)

	// Dates strictly increasing, running total consistent.
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Date.After(series[i-1].Date))
		assert.Equal(t, series[i-1].Total+series[i].Delta, series[i].Total)
	}
}

func TestStudentsAndIncomeByNeighborhood(t *testing.T) {
	schools := []registry.School{
		{Name: "A", Neighborhood: "Sarandi", Students: 100, Income: 2},
		{Name: "B", Neighborhood: "Centro", Students: 50, Income: 5},
		{Name: "C", Neighborhood: "Sarandi", Students: 70, Income: 4},
	}

	students := aggregate.StudentsByNeighborhood(schools)
	require.Len(t, students, 2)
	assert.Equal(t, aggregate.NeighborhoodStudents{Neighborhood: "Sarandi", Students: 170}, students[0])
	assert.Equal(t, aggregate.NeighborhoodStudents{Neighborhood: "Centro", Students: 50}, students[1])

	income := aggregate.IncomeByNeighborhood(schools)
	require.Len(t, income, 2)
	assert.InDelta(t, 3.0, income[0].MeanIncome, 1e-9)
	assert.InDelta(t, 5.0, income[1].MeanIncome, 1e-9)

	assert.InDelta(t, 11.0/3, aggregate.MeanIncome(schools), 1e-9)
}

func TestTopByDamage(t *testing.T) {
	schools := []registry.School{
		{Name: "A", EstimatedDamage: 100},
		{Name: "B", EstimatedDamage: 300},
		{Name: "C", EstimatedDamage: 300},
		{Name: "D", EstimatedDamage: 200},
	}

	top := aggregate.TopByDamage(schools, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].Name, "ties keep registry order")
	assert.Equal(t, "C", top[1].Name)
	assert.Equal(t, "D", top[2].Name)

	assert.Len(t, aggregate.TopByDamage(schools, 10), 4)
	assert.Equal(t, "A", schools[0].Name, "input order untouched")
}

func TestRun(t *testing.T) {
	schools := []registry.School{
		{Name: "A", Neighborhood: "Centro", EstimatedDamage: 100000},
	}
	txs := []ledger.Transaction{
		{School: "A", Direction: ledger.DirectionExit, Status: ledger.StatusPaid, Amount: 30000, DueDate: day(3)},
		{School: "A", Direction: ledger.DirectionEntry, Status: ledger.StatusPaid, Amount: 90000, DueDate: day(1)},
		{School: "ZZ", Direction: ledger.DirectionExit, Status: ledger.StatusForecast, Amount: 10},
		{RawSchool: "A", School: "A", Flags: ledger.FlagBadAmount, Direction: ledger.DirectionExit, Status: ledger.StatusPaid},
	}

	r, err := aggregate.Run(schools, txs, ledger.ModePaidOnly, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(60000), r.Summary.CurrentBalance)
	assert.Equal(t, int64(30000), r.Summary.TotalInvested)
	require.Len(t, r.Schools, 1)
	assert.Equal(t, int64(30000), r.Schools[0].Invested)
	require.Len(t, r.Unmatched, 1)
	assert.Equal(t, "ZZ", r.Unmatched[0].School)
	require.Len(t, r.Balance, 2)
	assert.Equal(t, int64(60000), r.Balance[1].Total)
	require.Len(t, r.InvestedByNeighborhood, 1)
	assert.Equal(t, int64(30000), r.InvestedByNeighborhood[0].Invested)
	require.Len(t, r.Flagged, 1)

	// Re-running the same snapshot reproduces the same report.
	again, err := aggregate.Run(schools, txs, ledger.ModePaidOnly, 10)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}

func TestRun_RejectsBadConfiguration(t *testing.T) {
	_, err := aggregate.Run(nil, nil, ledger.Mode("everything"), 10)
	require.Error(t, err)

	_, err = aggregate.Run(nil, nil, ledger.ModePaidOnly, 0)
	require.Error(t, err)
}
