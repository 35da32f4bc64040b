// Package export writes the transaction collection to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/banktrace/banktrace/internal/transaction"
)

// CSV writes one row per transaction with a fixed column order.
func CSV(w io.Writer, ts []transaction.Transaction) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	records := make([][]string, 0, len(ts)+1)
	records = append(records, []string{
		"Date", "Description", "Amount", "Category", "Parent Category",
		"Type", "Account", "Reference", "Balance", "Notes",
	})

	for _, t := range ts {
		categoryName := ""
		parentName := ""
		if t.Category != nil {
			categoryName = t.Category.Name
			parentName = t.Category.Parent
		}
		balance := ""
		if t.Balance != nil {
			balance = t.Balance.String()
		}

		records = append(records, []string{
			t.Date.String(),
			t.Description,
			t.Amount.String(),
			categoryName,
			parentName,
			string(t.Type),
			t.Account,
			t.Reference,
			balance,
			t.Notes,
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("writing CSV records: %w", err)
	}
	return nil
}

// JSON writes the same document shape the store persists.
func JSON(w io.Writer, ts []transaction.Transaction) error {
	if ts == nil {
		ts = []transaction.Transaction{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Transactions []transaction.Transaction `json:"transactions"`
	}{Transactions: ts})
}
