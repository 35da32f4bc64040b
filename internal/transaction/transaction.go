// Package transaction defines the core domain types shared by every other
// package: transactions, categories and detected recurring patterns.
// Monetary values use shopspring decimals so the exact text of an amount
// survives a parse/serialize round trip.
package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Type string

const (
	Debit    Type = "debit"
	Credit   Type = "credit"
	Transfer Type = "transfer"
)

// ValidationError reports a domain invariant broken at construction time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Category is a named spending bucket, optionally nested one level under a
// parent bucket. Treat values as immutable; equality is (Name, Parent).
type Category struct {
	Name        string
	Parent      string
	Description string
}

func (c Category) Equal(other Category) bool {
	return c.Name == other.Name && c.Parent == other.Parent
}

// Transaction is a single bank statement entry. Once persisted it is treated
// as immutable; operations that change a transaction produce a copy.
type Transaction struct {
	Date                Date
	Amount              decimal.Decimal
	Description         string
	Type                Type
	Category            *Category
	Account             string
	Reference           string
	Balance             *decimal.Decimal
	Notes               string
	ID                  string
	IsRecurring         bool
	RecurringID         string
	ParentTransactionID string
}

// New builds a transaction and enforces the amount invariant. Sign
// convention: negative amounts are outflows unless the type is transfer or
// credit.
func New(date Date, amount decimal.Decimal, description string, typ Type) (Transaction, error) {
	t := Transaction{
		Date:        date,
		Amount:      amount,
		Description: description,
		Type:        typ,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (t Transaction) Validate() error {
	if t.Amount.IsZero() {
		return &ValidationError{Field: "amount", Reason: "transaction amount cannot be zero"}
	}
	return nil
}

// IsExpense reports whether the transaction is money going out: a debit, or a
// transfer with a negative amount.
func (t Transaction) IsExpense() bool {
	return t.Type == Debit || (t.Type == Transfer && t.Amount.IsNegative())
}

// IsIncome reports whether the transaction is money coming in: a credit, or a
// transfer with a positive amount.
func (t Transaction) IsIncome() bool {
	return t.Type == Credit || (t.Type == Transfer && t.Amount.IsPositive())
}

func (t Transaction) AbsoluteAmount() decimal.Decimal {
	return t.Amount.Abs()
}
