// Package editor implements mutations of stored transactions: field edits,
// splits across categories, merges and bulk edits. All mutations go through
// the store; the editor never rewrites records in place.
package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/transaction"
)

// Split amounts must add up to the original transaction's absolute amount
// within this tolerance.
var splitTolerance = decimal.NewFromFloat(0.01)

// InvalidSplitError reports split amounts that do not add up to the original
// transaction's absolute amount within the tolerance.
type InvalidSplitError struct {
	Original decimal.Decimal
	Total    decimal.Decimal
}

func (e *InvalidSplitError) Error() string {
	return fmt.Sprintf("split amounts (%s) must equal original amount (%s)", e.Total, e.Original)
}

// Split is one share of a transaction being divided across categories.
type Split struct {
	Amount      decimal.Decimal
	Category    transaction.Category
	Description string
}

// FieldEdits carries optional replacement values; nil fields are untouched.
type FieldEdits struct {
	Description *string
	Amount      *decimal.Decimal
	Date        *transaction.Date
	Category    *transaction.Category
	Notes       *string
}

type Editor struct {
	store storage.Store
}

func New(store storage.Store) *Editor {
	return &Editor{store: store}
}

// Edit applies the given field changes to an existing transaction and
// persists the result.
func (e *Editor) Edit(id string, edits FieldEdits) (transaction.Transaction, error) {
	t, err := e.store.GetByID(id)
	if err != nil {
		return transaction.Transaction{}, err
	}

	if edits.Description != nil {
		t.Description = *edits.Description
	}
	if edits.Amount != nil {
		t.Amount = *edits.Amount
	}
	if edits.Date != nil {
		t.Date = *edits.Date
	}
	if edits.Category != nil {
		t.Category = edits.Category
	}
	if edits.Notes != nil {
		t.Notes = *edits.Notes
	}

	if err := t.Validate(); err != nil {
		return transaction.Transaction{}, err
	}
	if err := e.store.Update(t); err != nil {
		return transaction.Transaction{}, err
	}
	return t, nil
}

func (e *Editor) Delete(id string) error {
	return e.store.Delete(id)
}

func (e *Editor) DeleteMultiple(ids []string) (int, error) {
	return e.store.DeleteMultiple(ids)
}

// SplitTransaction divides a transaction's amount across multiple
// categories, each share becoming its own record linked to the original via
// ParentTransactionID. Shares inherit the original's sign, date, account and
// reference.
func (e *Editor) SplitTransaction(id string, splits []Split) ([]transaction.Transaction, error) {
	original, err := e.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, split := range splits {
		total = total.Add(split.Amount)
	}
	if total.Sub(original.AbsoluteAmount()).Abs().GreaterThan(splitTolerance) {
		return nil, &InvalidSplitError{Original: original.AbsoluteAmount(), Total: total}
	}

	out := make([]transaction.Transaction, 0, len(splits))
	for _, split := range splits {
		amount := split.Amount.Abs()
		if original.Amount.IsNegative() {
			amount = amount.Neg()
		}

		label := split.Description
		if label == "" {
			label = split.Category.Name
		}

		splitCategory := split.Category
		out = append(out, transaction.Transaction{
			Date:                original.Date,
			Amount:              amount,
			Description:         fmt.Sprintf("%s - %s", original.Description, label),
			Type:                original.Type,
			Category:            &splitCategory,
			Account:             original.Account,
			Reference:           original.Reference,
			Notes:               split.Description,
			ID:                  uuid.NewString(),
			ParentTransactionID: id,
		})
	}

	if _, err := e.store.Save(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge combines two or more transactions into one record carrying the
// summed amount, then removes the originals.
func (e *Editor) Merge(ids []string) (transaction.Transaction, error) {
	if len(ids) < 2 {
		return transaction.Transaction{}, fmt.Errorf("need at least 2 transactions to merge")
	}

	ts := make([]transaction.Transaction, 0, len(ids))
	for _, id := range ids {
		t, err := e.store.GetByID(id)
		if err != nil {
			return transaction.Transaction{}, err
		}
		ts = append(ts, t)
	}

	total := decimal.Zero
	descriptions := make([]string, 0, len(ts))
	for _, t := range ts {
		total = total.Add(t.Amount)
		descriptions = append(descriptions, t.Description)
	}

	merged := transaction.Transaction{
		Date:        ts[0].Date,
		Amount:      total,
		Description: strings.Join(descriptions, ", "),
		Type:        ts[0].Type,
		Category:    ts[0].Category,
		Account:     ts[0].Account,
		Notes:       fmt.Sprintf("Merged %d transactions", len(ts)),
		ID:          uuid.NewString(),
	}
	if err := merged.Validate(); err != nil {
		return transaction.Transaction{}, err
	}

	if _, err := e.store.Save([]transaction.Transaction{merged}); err != nil {
		return transaction.Transaction{}, err
	}
	if _, err := e.store.DeleteMultiple(ids); err != nil {
		return transaction.Transaction{}, err
	}
	return merged, nil
}

// BulkEdit applies a category and/or appended notes to many transactions.
// Unknown ids are skipped; the count of records actually updated is
// returned.
func (e *Editor) BulkEdit(ids []string, category *transaction.Category, notes string) (int, error) {
	updated := 0
	for _, id := range ids {
		t, err := e.store.GetByID(id)
		if err != nil {
			continue
		}

		if category != nil {
			t.Category = category
		}
		if notes != "" {
			if t.Notes != "" {
				t.Notes = t.Notes + "\n" + notes
			} else {
				t.Notes = notes
			}
		}

		if err := e.store.Update(t); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
