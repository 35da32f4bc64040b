// Package storage defines the transaction store contract and the fingerprint
// that underpins duplicate detection.
package storage

import (
	"fmt"
	"strings"

	"github.com/banktrace/banktrace/internal/transaction"
)

// NotFoundError reports an operation against an unknown transaction id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return "transaction not found"
	}
	return fmt.Sprintf("transaction %s not found", e.ID)
}

// StorageError wraps an underlying I/O failure on load or save.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store owns the persisted transaction collection. The persisted set never
// contains two distinct entries with equal fingerprints.
//
// Implementations are read-modify-write per call: every operation costs
// O(stored transactions). Fine at personal scale, and single-process only.
type Store interface {
	// Save persists the transactions whose fingerprints are not already
	// present, assigning ids where missing, and returns how many were
	// added. Calling Save twice with the same input changes nothing the
	// second time.
	Save(ts []transaction.Transaction) (int, error)
	LoadAll() ([]transaction.Transaction, error)

	// CheckDuplicates returns the subset of candidates already present in
	// storage. FindDuplicates returns the subset whose fingerprint repeats
	// within the candidate list itself, independent of storage state.
	CheckDuplicates(ts []transaction.Transaction) ([]transaction.Transaction, error)
	FindDuplicates(ts []transaction.Transaction) []transaction.Transaction

	GetByID(id string) (transaction.Transaction, error)
	Update(t transaction.Transaction) error
	Delete(id string) error
	DeleteMultiple(ids []string) (int, error)
}

// Fingerprint derives the duplicate-detection key: ISO date, exact amount
// text, lowercased trimmed description and, when present, the bank
// reference, pipe-joined. Deterministic and stable across restarts.
//
// Category and account are deliberately not part of the key: two otherwise
// identical transactions on different accounts collapse to one entry. Known
// precision limitation inherited from the fingerprint definition.
func Fingerprint(t transaction.Transaction) string {
	parts := []string{
		t.Date.String(),
		t.Amount.String(),
		strings.ToLower(strings.TrimSpace(t.Description)),
	}
	if t.Reference != "" {
		parts = append(parts, t.Reference)
	}
	return strings.Join(parts, "|")
}
