package storage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/transaction"
)

func fingerprintTransaction(t *testing.T, description string) transaction.Transaction {
	t.Helper()

	amount, err := decimal.NewFromString("-45.67")
	if err != nil {
		t.Fatalf("Failed to parse amount: %v", err)
	}
	txn, err := transaction.New(transaction.NewDate(2024, time.January, 15), amount, description, transaction.Debit)
	if err != nil {
		t.Fatalf("Failed to build transaction: %v", err)
	}
	return txn
}

func TestFingerprint(t *testing.T) {
	txn := fingerprintTransaction(t, "GROCERY STORE #1234")

	want := "2024-01-15|-45.67|grocery store #1234"
	if got := Fingerprint(txn); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprintWithReference(t *testing.T) {
	txn := fingerprintTransaction(t, "GROCERY STORE #1234")
	txn.Reference = "REF-001"

	want := "2024-01-15|-45.67|grocery store #1234|REF-001"
	if got := Fingerprint(txn); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprintNormalizesDescription(t *testing.T) {
	a := fingerprintTransaction(t, "  Grocery Store #1234  ")
	b := fingerprintTransaction(t, "GROCERY STORE #1234")

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("case and surrounding whitespace should not change the fingerprint")
	}
}

func TestFingerprintIgnoresCategoryAndAccount(t *testing.T) {
	a := fingerprintTransaction(t, "GROCERY STORE #1234")
	b := fingerprintTransaction(t, "GROCERY STORE #1234")
	b.Category = &transaction.Category{Name: "Groceries"}
	b.Account = "savings"

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("category and account must not be part of the fingerprint")
	}
}

func TestFingerprintDistinguishes(t *testing.T) {
	base := fingerprintTransaction(t, "GROCERY STORE #1234")

	differentDay := base
	differentDay.Date = transaction.NewDate(2024, time.January, 16)
	if Fingerprint(base) == Fingerprint(differentDay) {
		t.Error("different dates should yield different fingerprints")
	}

	differentAmount := base
	differentAmount.Amount = decimal.NewFromFloat(-45.68)
	if Fingerprint(base) == Fingerprint(differentAmount) {
		t.Error("different amounts should yield different fingerprints")
	}
}
