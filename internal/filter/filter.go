// Package filter implements predicate search over a transaction snapshot.
package filter

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/transaction"
)

// Query combines optional predicates; zero-valued fields do not filter.
// Amount bounds compare absolute values, so a query for amounts above 50
// matches both -75.00 and 75.00.
type Query struct {
	Text        string
	Category    string
	Account     string
	DateFrom    *transaction.Date
	DateTo      *transaction.Date
	AmountMin   *decimal.Decimal
	AmountMax   *decimal.Decimal
	Type        transaction.Type
	IsRecurring *bool
}

func Search(ts []transaction.Transaction, q Query) []transaction.Transaction {
	var out []transaction.Transaction
	for _, t := range ts {
		if matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t transaction.Transaction, q Query) bool {
	if q.Text != "" {
		text := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(t.Description), text) &&
			!(t.Notes != "" && strings.Contains(strings.ToLower(t.Notes), text)) {
			return false
		}
	}
	if q.Category != "" {
		if t.Category == nil || !strings.EqualFold(t.Category.Name, q.Category) {
			return false
		}
	}
	if q.Account != "" && t.Account != q.Account {
		return false
	}
	if q.DateFrom != nil && t.Date.Before(*q.DateFrom) {
		return false
	}
	if q.DateTo != nil && t.Date.After(*q.DateTo) {
		return false
	}
	if q.AmountMin != nil && t.AbsoluteAmount().LessThan(q.AmountMin.Abs()) {
		return false
	}
	if q.AmountMax != nil && t.AbsoluteAmount().GreaterThan(q.AmountMax.Abs()) {
		return false
	}
	if q.Type != "" && t.Type != q.Type {
		return false
	}
	if q.IsRecurring != nil && t.IsRecurring != *q.IsRecurring {
		return false
	}
	return true
}

// Categories returns the sorted distinct category names present in ts.
func Categories(ts []transaction.Transaction) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range ts {
		if t.Category != nil && !seen[t.Category.Name] {
			seen[t.Category.Name] = true
			out = append(out, t.Category.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Accounts returns the sorted distinct account ids present in ts.
func Accounts(ts []transaction.Transaction) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range ts {
		if t.Account != "" && !seen[t.Account] {
			seen[t.Account] = true
			out = append(out, t.Account)
		}
	}
	sort.Strings(out)
	return out
}
