package state

import (
	"sort"
	"time"

	"github.com/mfcruz/gestor/internal/model"
)

// Summarize recomputes the financial summary from scratch: per-type totals,
// net profit, and a day-by-day cash-flow series in ascending date order.
func Summarize(txs []model.Transaction) model.Summary {
	var sum model.Summary

	byDay := make(map[time.Time]*model.CashFlowPoint)

	for _, tx := range txs {
		day := tx.Date.Truncate(24 * time.Hour)

		point, ok := byDay[day]
		if !ok {
			point = &model.CashFlowPoint{Date: day}
			byDay[day] = point
		}

		switch tx.Type {
		case model.TypeIncome:
			sum.TotalIncome += tx.Amount
			point.Income += tx.Amount
		case model.TypeExpense:
			sum.TotalExpenses += tx.Amount
			point.Expenses += tx.Amount
		}
	}

	sum.NetProfit = sum.TotalIncome - sum.TotalExpenses

	sum.CashFlow = make([]model.CashFlowPoint, 0, len(byDay))
	for _, point := range byDay {
		sum.CashFlow = append(sum.CashFlow, *point)
	}

	sort.Slice(sum.CashFlow, func(i, j int) bool {
		return sum.CashFlow[i].Date.Before(sum.CashFlow[j].Date)
	})

	return sum
}
