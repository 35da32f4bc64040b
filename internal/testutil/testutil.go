// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/storage/jsonfile"
	"github.com/banktrace/banktrace/internal/transaction"
)

// TestLogger returns a logger that discards all output.
func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	return logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: "discard",
	})
}

// TempStore returns a jsonfile store rooted in a per-test temp directory.
func TempStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := jsonfile.New(t.TempDir(), TestLogger(t))
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return store
}

// MustTransaction builds a valid transaction or fails the test.
func MustTransaction(t *testing.T, date string, amount string, description string, typ transaction.Type) transaction.Transaction {
	t.Helper()

	d, err := transaction.ParseDate(date)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", date, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("Failed to parse amount %q: %v", amount, err)
	}
	txn, err := transaction.New(d, a, description, typ)
	if err != nil {
		t.Fatalf("Failed to build transaction: %v", err)
	}
	return txn
}

// Date builds a transaction.Date or fails the test.
func Date(t *testing.T, value string) transaction.Date {
	t.Helper()

	d, err := transaction.ParseDate(value)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", value, err)
	}
	return d
}

// Day is a convenience wrapper over transaction.NewDate.
func Day(year int, month time.Month, day int) transaction.Date {
	return transaction.NewDate(year, month, day)
}
