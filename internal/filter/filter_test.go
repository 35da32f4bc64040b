package filter

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/testutil"
	"github.com/banktrace/banktrace/internal/transaction"
)

func snapshot(t *testing.T) []transaction.Transaction {
	t.Helper()

	groceries := testutil.MustTransaction(t, "2024-01-10", "-45.67", "GROCERY STORE #1234", transaction.Debit)
	groceries.Category = &transaction.Category{Name: "Groceries", Parent: "Food & Dining"}
	groceries.Account = "checking"

	netflix := testutil.MustTransaction(t, "2024-01-15", "-15.99", "NETFLIX.COM", transaction.Debit)
	netflix.Category = &transaction.Category{Name: "Streaming Services", Parent: "Entertainment"}
	netflix.Account = "checking"
	netflix.IsRecurring = true

	salary := testutil.MustTransaction(t, "2024-02-01", "3000.00", "ACME PAYROLL", transaction.Credit)
	salary.Account = "savings"
	salary.Notes = "monthly salary"

	return []transaction.Transaction{groceries, netflix, salary}
}

func TestSearch(t *testing.T) {
	ts := snapshot(t)

	recurring := true
	minAmount := decimal.NewFromInt(20)
	maxAmount := decimal.NewFromInt(100)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "no predicates returns everything",
			query: Query{},
			want:  []string{"GROCERY STORE #1234", "NETFLIX.COM", "ACME PAYROLL"},
		},
		{
			name:  "text matches description case insensitively",
			query: Query{Text: "netflix"},
			want:  []string{"NETFLIX.COM"},
		},
		{
			name:  "text matches notes too",
			query: Query{Text: "salary"},
			want:  []string{"ACME PAYROLL"},
		},
		{
			name:  "category name is case insensitive",
			query: Query{Category: "groceries"},
			want:  []string{"GROCERY STORE #1234"},
		},
		{
			name:  "account is exact",
			query: Query{Account: "savings"},
			want:  []string{"ACME PAYROLL"},
		},
		{
			name:  "date range is inclusive",
			query: Query{DateFrom: datePtr(t, "2024-01-15"), DateTo: datePtr(t, "2024-02-01")},
			want:  []string{"NETFLIX.COM", "ACME PAYROLL"},
		},
		{
			name:  "amount bounds compare absolute values",
			query: Query{AmountMin: &minAmount, AmountMax: &maxAmount},
			want:  []string{"GROCERY STORE #1234"},
		},
		{
			name:  "type filter",
			query: Query{Type: transaction.Credit},
			want:  []string{"ACME PAYROLL"},
		},
		{
			name:  "recurring flag",
			query: Query{IsRecurring: &recurring},
			want:  []string{"NETFLIX.COM"},
		},
		{
			name:  "predicates combine",
			query: Query{Account: "checking", Text: "grocery"},
			want:  []string{"GROCERY STORE #1234"},
		},
		{
			name:  "no matches",
			query: Query{Text: "zzxq"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(ts, tt.query)

			var descriptions []string
			for _, txn := range got {
				descriptions = append(descriptions, txn.Description)
			}
			if !reflect.DeepEqual(descriptions, tt.want) {
				t.Errorf("Search() = %v, want %v", descriptions, tt.want)
			}
		})
	}
}

func datePtr(t *testing.T, value string) *transaction.Date {
	t.Helper()

	d := testutil.Date(t, value)
	return &d
}

func TestCategories(t *testing.T) {
	got := Categories(snapshot(t))
	want := []string{"Groceries", "Streaming Services"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestAccounts(t *testing.T) {
	got := Accounts(snapshot(t))
	want := []string{"checking", "savings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Accounts() = %v, want %v", got, want)
	}
}
