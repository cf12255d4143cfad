package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finance/internal/models"
	"finance/internal/storage"
)

var hundred = decimal.NewFromInt(100)

// netCashFlow returns income minus expenses for the user over [start, end].
func netCashFlow(ctx context.Context, repo storage.TransactionRepository, userID string, start, end time.Time) (decimal.Decimal, error) {
	income, err := repo.SumAmountByTypeAndDateRange(ctx, userID, models.CategoryTypeIncome, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := repo.SumAmountByTypeAndDateRange(ctx, userID, models.CategoryTypeExpense, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return income.Sub(expenses), nil
}

// progressPercentage is progress/target as a percentage rounded half-up to
// two places. A non-positive target yields 0.
func progressPercentage(progress, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	return progress.DivRound(target, 4).Mul(hundred).Round(2).InexactFloat64()
}

// summarize groups transactions by category name per type. Category sums are
// exact; the grand totals are rounded half-up to two places.
func summarize(txns []models.Transaction) Totals {
	totals := Totals{
		IncomeByCategory:   map[string]decimal.Decimal{},
		ExpensesByCategory: map[string]decimal.Decimal{},
	}

	for _, t := range txns {
		bucket := totals.ExpensesByCategory
		if t.Type == models.CategoryTypeIncome {
			bucket = totals.IncomeByCategory
		}
		bucket[t.CategoryName] = bucket[t.CategoryName].Add(t.Amount)
	}

	totals.TotalIncome = sumValues(totals.IncomeByCategory).Round(2)
	totals.TotalExpenses = sumValues(totals.ExpensesByCategory).Round(2)
	totals.NetSavings = netSavings(totals.TotalIncome, totals.TotalExpenses)
	return totals
}

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range m {
		sum = sum.Add(v)
	}
	return sum
}

// netSavings is income minus expenses, normalized to an exact zero when the
// two are equal.
func netSavings(income, expenses decimal.Decimal) decimal.Decimal {
	diff := income.Sub(expenses)
	if diff.IsZero() {
		return decimal.Zero
	}
	return diff.Round(2)
}
