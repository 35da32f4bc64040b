package transaction

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNew(t *testing.T) {
	date := NewDate(2024, time.January, 15)

	txn, err := New(date, decimal.NewFromFloat(-45.67), "GROCERY STORE", Debit)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if txn.Description != "GROCERY STORE" {
		t.Errorf("Description = %q, want %q", txn.Description, "GROCERY STORE")
	}
	if txn.Type != Debit {
		t.Errorf("Type = %q, want %q", txn.Type, Debit)
	}
	if txn.IsRecurring {
		t.Error("IsRecurring should default to false")
	}
	if txn.Category != nil {
		t.Error("Category should default to nil")
	}
}

func TestNewZeroAmount(t *testing.T) {
	_, err := New(NewDate(2024, time.January, 15), decimal.Zero, "VOID", Debit)
	if err == nil {
		t.Fatal("New() with zero amount should return an error")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if validationErr.Field != "amount" {
		t.Errorf("Field = %q, want %q", validationErr.Field, "amount")
	}
}

func TestIsExpenseIsIncome(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		typ         Type
		wantExpense bool
		wantIncome  bool
	}{
		{
			name:        "debit is an expense",
			amount:      "-45.67",
			typ:         Debit,
			wantExpense: true,
			wantIncome:  false,
		},
		{
			name:        "credit is income",
			amount:      "2500.00",
			typ:         Credit,
			wantExpense: false,
			wantIncome:  true,
		},
		{
			name:        "negative transfer is an expense",
			amount:      "-100",
			typ:         Transfer,
			wantExpense: true,
			wantIncome:  false,
		},
		{
			name:        "positive transfer is income",
			amount:      "100",
			typ:         Transfer,
			wantExpense: false,
			wantIncome:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("Failed to parse amount: %v", err)
			}
			txn, err := New(NewDate(2024, time.March, 1), amount, "test", tt.typ)
			if err != nil {
				t.Fatalf("New() returned error: %v", err)
			}

			if got := txn.IsExpense(); got != tt.wantExpense {
				t.Errorf("IsExpense() = %v, want %v", got, tt.wantExpense)
			}
			if got := txn.IsIncome(); got != tt.wantIncome {
				t.Errorf("IsIncome() = %v, want %v", got, tt.wantIncome)
			}
		})
	}
}

func TestAbsoluteAmount(t *testing.T) {
	txn, err := New(NewDate(2024, time.March, 1), decimal.NewFromFloat(-45.67), "test", Debit)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	want := decimal.NewFromFloat(45.67)
	if !txn.AbsoluteAmount().Equal(want) {
		t.Errorf("AbsoluteAmount() = %s, want %s", txn.AbsoluteAmount(), want)
	}
}

func TestCategoryEqual(t *testing.T) {
	a := Category{Name: "Groceries", Parent: "Food & Dining", Description: "weekly shop"}
	b := Category{Name: "Groceries", Parent: "Food & Dining"}
	c := Category{Name: "Groceries", Parent: "Shopping"}

	if !a.Equal(b) {
		t.Error("categories differing only in description should be equal")
	}
	if a.Equal(c) {
		t.Error("categories with different parents should not be equal")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	amount, _ := decimal.NewFromString("-45.67")
	balance, _ := decimal.NewFromString("1200.50")

	original := Transaction{
		Date:        NewDate(2024, time.January, 15),
		Amount:      amount,
		Description: "GROCERY STORE #1234",
		Type:        Debit,
		Category:    &Category{Name: "Groceries", Parent: "Food & Dining"},
		Account:     "checking",
		Reference:   "REF-001",
		Balance:     &balance,
		Notes:       "weekly shop",
		ID:          "txn-1",
		IsRecurring: true,
		RecurringID: "rec-1",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	var decoded Transaction
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() returned error: %v", err)
	}

	if !decoded.Amount.Equal(original.Amount) {
		t.Errorf("Amount = %s, want %s", decoded.Amount, original.Amount)
	}
	if decoded.Date.String() != "2024-01-15" {
		t.Errorf("Date = %s, want 2024-01-15", decoded.Date)
	}
	if decoded.Category == nil || !decoded.Category.Equal(*original.Category) {
		t.Errorf("Category = %+v, want %+v", decoded.Category, original.Category)
	}
	if decoded.Balance == nil || !decoded.Balance.Equal(*original.Balance) {
		t.Errorf("Balance = %v, want %s", decoded.Balance, balance)
	}
	if decoded.ID != original.ID || decoded.RecurringID != original.RecurringID {
		t.Errorf("identity fields lost: got (%q, %q)", decoded.ID, decoded.RecurringID)
	}
	if !decoded.IsRecurring {
		t.Error("IsRecurring lost in round trip")
	}
}

func TestMarshalAmountAsString(t *testing.T) {
	amount, _ := decimal.NewFromString("-45.67")
	txn := Transaction{
		Date:        NewDate(2024, time.January, 15),
		Amount:      amount,
		Description: "test",
		Type:        Debit,
	}

	data, err := json.Marshal(txn)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	if !strings.Contains(string(data), `"amount":"-45.67"`) {
		t.Errorf("amount should serialize as a string, got %s", data)
	}
}

func TestMarshalOmitsOptionalFields(t *testing.T) {
	txn := Transaction{
		Date:        NewDate(2024, time.January, 15),
		Amount:      decimal.NewFromInt(-10),
		Description: "test",
		Type:        Debit,
	}

	data, err := json.Marshal(txn)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	for _, field := range []string{"category", "account", "balance", "is_recurring", "recurring_id", "parent_transaction_id"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("empty field %q should be omitted, got %s", field, data)
		}
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	raw := `{"date":"2024-01-15","amount":"-10","description":"test","transaction_type":"debit"}`

	var txn Transaction
	if err := json.Unmarshal([]byte(raw), &txn); err != nil {
		t.Fatalf("Unmarshal() returned error: %v", err)
	}

	if txn.Category != nil {
		t.Error("absent category should decode as nil")
	}
	if txn.Balance != nil {
		t.Error("absent balance should decode as nil")
	}
	if txn.IsRecurring {
		t.Error("absent is_recurring should decode as false")
	}
}

func TestUnmarshalZeroAmount(t *testing.T) {
	raw := `{"date":"2024-01-15","amount":"0","description":"test","transaction_type":"debit"}`

	var txn Transaction
	err := json.Unmarshal([]byte(raw), &txn)
	if err == nil {
		t.Fatal("zero amount should fail validation on read")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestUnmarshalBadAmount(t *testing.T) {
	raw := `{"date":"2024-01-15","amount":"not-a-number","description":"test","transaction_type":"debit"}`

	var txn Transaction
	if err := json.Unmarshal([]byte(raw), &txn); err == nil {
		t.Fatal("unparseable amount should return an error")
	}
}
