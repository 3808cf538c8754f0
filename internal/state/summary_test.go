package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfcruz/gestor/internal/model"
	"github.com/mfcruz/gestor/internal/state"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarize_NetProfit(t *testing.T) {
	txs := []model.Transaction{
		{ID: "1", Type: model.TypeIncome, Amount: 30000, Date: day(2025, 1, 10)},
		{ID: "2", Type: model.TypeIncome, Amount: 20000, Date: day(2025, 1, 20)},
		{ID: "3", Type: model.TypeExpense, Amount: 15000, Date: day(2025, 1, 15)},
	}

	sum := state.Summarize(txs)

	assert.Equal(t, int64(50000), sum.TotalIncome)
	assert.Equal(t, int64(15000), sum.TotalExpenses)
	assert.Equal(t, int64(35000), sum.NetProfit)
}

func TestSummarize_CashFlowOrderedByDay(t *testing.T) {
	txs := []model.Transaction{
		{ID: "1", Type: model.TypeExpense, Amount: 500, Date: day(2025, 2, 3)},
		{ID: "2", Type: model.TypeIncome, Amount: 1000, Date: day(2025, 2, 1)},
		{ID: "3", Type: model.TypeIncome, Amount: 700, Date: day(2025, 2, 3)},
		{ID: "4", Type: model.TypeIncome, Amount: 200, Date: time.Date(2025, 2, 1, 15, 30, 0, 0, time.UTC)},
	}

	sum := state.Summarize(txs)

	require.Len(t, sum.CashFlow, 2)

	assert.Equal(t, day(2025, 2, 1), sum.CashFlow[0].Date)
	assert.Equal(t, int64(1200), sum.CashFlow[0].Income)
	assert.Equal(t, int64(0), sum.CashFlow[0].Expenses)

	assert.Equal(t, day(2025, 2, 3), sum.CashFlow[1].Date)
	assert.Equal(t, int64(700), sum.CashFlow[1].Income)
	assert.Equal(t, int64(500), sum.CashFlow[1].Expenses)
}

func TestSummarize_Empty(t *testing.T) {
	sum := state.Summarize(nil)

	assert.Zero(t, sum.TotalIncome)
	assert.Zero(t, sum.TotalExpenses)
	assert.Zero(t, sum.NetProfit)
	assert.Empty(t, sum.CashFlow)
}

func TestSetSummary_WholesaleReplace(t *testing.T) {
	s := state.New().SetSummary(model.Summary{TotalIncome: 1, TotalExpenses: 1})

	next := s.SetSummary(model.Summary{
		TotalIncome:   50000,
		TotalExpenses: 15000,
		NetProfit:     35000,
	})

	require.NotNil(t, next.Finances.Summary)
	assert.Equal(t, int64(35000), next.Finances.Summary.NetProfit)
	assert.Equal(t, int64(1), s.Finances.Summary.TotalIncome)
}
