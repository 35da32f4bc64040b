// Package report aggregates transactions into monthly summaries and
// per-category spending patterns.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/transaction"
)

type MonthlySummary struct {
	Year              int
	Month             int
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetAmount         decimal.Decimal
	TransactionCount  int
	CategoryBreakdown map[string]decimal.Decimal
}

// SavingsRate returns net amount over income as a percentage. The second
// return is false when there is no income to divide by.
func (s MonthlySummary) SavingsRate() (float64, bool) {
	if s.TotalIncome.IsZero() {
		return 0, false
	}
	rate, _ := s.NetAmount.Div(s.TotalIncome).Mul(decimal.NewFromInt(100)).Float64()
	return rate, true
}

type SpendingPattern struct {
	Category           string
	TotalAmount        decimal.Decimal
	TransactionCount   int
	AverageTransaction decimal.Decimal
	MinTransaction     decimal.Decimal
	MaxTransaction     decimal.Decimal
	PercentageOfTotal  float64
	Trend              string
}

// Analyzer computes aggregates over a read-only transaction snapshot.
type Analyzer struct {
	transactions []transaction.Transaction
}

func NewAnalyzer(ts []transaction.Transaction) *Analyzer {
	return &Analyzer{transactions: ts}
}

// MonthlySummary aggregates one calendar month. Months outside 1..12 are a
// validation error, never silently coerced.
func (a *Analyzer) MonthlySummary(year, month int) (MonthlySummary, error) {
	if month < 1 || month > 12 {
		return MonthlySummary{}, &transaction.ValidationError{Field: "month", Reason: "month must be between 1 and 12"}
	}

	summary := MonthlySummary{
		Year:              year,
		Month:             month,
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		NetAmount:         decimal.Zero,
		CategoryBreakdown: map[string]decimal.Decimal{},
	}

	for _, t := range a.transactions {
		if t.Date.Year() != year || int(t.Date.Month()) != month {
			continue
		}
		summary.TransactionCount++

		if t.IsIncome() {
			summary.TotalIncome = summary.TotalIncome.Add(t.AbsoluteAmount())
		} else if t.IsExpense() {
			amount := t.AbsoluteAmount()
			summary.TotalExpenses = summary.TotalExpenses.Add(amount)
			if t.Category != nil {
				name := t.Category.Name
				summary.CategoryBreakdown[name] = summary.CategoryBreakdown[name].Add(amount)
			}
		}
	}

	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}

// AllMonthlySummaries returns a summary for every (year, month) present in
// the snapshot, in chronological order.
func (a *Analyzer) AllMonthlySummaries() []MonthlySummary {
	type yearMonth struct {
		year  int
		month int
	}

	seen := map[yearMonth]bool{}
	var months []yearMonth
	for _, t := range a.transactions {
		ym := yearMonth{t.Date.Year(), int(t.Date.Month())}
		if !seen[ym] {
			seen[ym] = true
			months = append(months, ym)
		}
	}

	sort.Slice(months, func(i, j int) bool {
		if months[i].year != months[j].year {
			return months[i].year < months[j].year
		}
		return months[i].month < months[j].month
	})

	summaries := make([]MonthlySummary, 0, len(months))
	for _, ym := range months {
		// Month values come from real dates, always valid here.
		summary, _ := a.MonthlySummary(ym.year, ym.month)
		summaries = append(summaries, summary)
	}
	return summaries
}

// SpendingPatterns returns per-category statistics over categorized
// expenses. An empty categoryName covers all categories.
func (a *Analyzer) SpendingPatterns(categoryName string) []SpendingPattern {
	grouped := map[string][]decimal.Decimal{}
	var order []string
	totalSpending := decimal.Zero

	for _, t := range a.transactions {
		if !t.IsExpense() || t.Category == nil {
			continue
		}
		totalSpending = totalSpending.Add(t.AbsoluteAmount())

		name := t.Category.Name
		if categoryName != "" && name != categoryName {
			continue
		}
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], t.AbsoluteAmount())
	}

	patterns := make([]SpendingPattern, 0, len(order))
	for _, name := range order {
		amounts := grouped[name]
		total := decimal.Zero
		minAmount := amounts[0]
		maxAmount := amounts[0]
		for _, amount := range amounts {
			total = total.Add(amount)
			if amount.LessThan(minAmount) {
				minAmount = amount
			}
			if amount.GreaterThan(maxAmount) {
				maxAmount = amount
			}
		}

		pattern := SpendingPattern{
			Category:           name,
			TotalAmount:        total,
			TransactionCount:   len(amounts),
			AverageTransaction: total.Div(decimal.NewFromInt(int64(len(amounts)))),
			MinTransaction:     minAmount,
			MaxTransaction:     maxAmount,
			Trend:              a.SpendingTrend(name, 3),
		}
		if totalSpending.IsPositive() {
			pct, _ := total.Div(totalSpending).Mul(decimal.NewFromInt(100)).Float64()
			pattern.PercentageOfTotal = pct
		}
		patterns = append(patterns, pattern)
	}

	return patterns
}

// TopCategories returns up to limit patterns ordered by total spending.
func (a *Analyzer) TopCategories(limit int) []SpendingPattern {
	patterns := a.SpendingPatterns("")
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].TotalAmount.GreaterThan(patterns[j].TotalAmount)
	})
	if limit > 0 && len(patterns) > limit {
		patterns = patterns[:limit]
	}
	return patterns
}

// SpendingTrend compares the two halves of the last N monthly totals for a
// category: a swing beyond ±10% reads as increasing/decreasing, anything
// inside is stable. Returns "" with under two months of data.
func (a *Analyzer) SpendingTrend(categoryName string, months int) string {
	summaries := a.AllMonthlySummaries()
	if len(summaries) < 2 {
		return ""
	}

	if months > 0 && len(summaries) > months {
		summaries = summaries[len(summaries)-months:]
	}

	amounts := make([]decimal.Decimal, 0, len(summaries))
	for _, summary := range summaries {
		amounts = append(amounts, summary.CategoryBreakdown[categoryName])
	}
	if len(amounts) < 2 {
		return ""
	}

	midpoint := len(amounts) / 2
	firstHalf := decimal.Zero
	for _, amount := range amounts[:midpoint] {
		firstHalf = firstHalf.Add(amount)
	}
	secondHalf := decimal.Zero
	for _, amount := range amounts[midpoint:] {
		secondHalf = secondHalf.Add(amount)
	}

	switch {
	case secondHalf.GreaterThan(firstHalf.Mul(decimal.NewFromFloat(1.1))):
		return "increasing"
	case secondHalf.LessThan(firstHalf.Mul(decimal.NewFromFloat(0.9))):
		return "decreasing"
	default:
		return "stable"
	}
}
