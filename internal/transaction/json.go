package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// The wire shape of a persisted transaction. Amounts and balances travel as
// decimal strings, never native JSON numbers. Optional fields are omitted
// when empty and default on read (is_recurring false, category absent).
type transactionJSON struct {
	Date                Date          `json:"date"`
	Amount              string        `json:"amount"`
	Description         string        `json:"description"`
	Type                Type          `json:"transaction_type"`
	Category            *categoryJSON `json:"category,omitempty"`
	Account             string        `json:"account,omitempty"`
	Reference           string        `json:"reference,omitempty"`
	Balance             string        `json:"balance,omitempty"`
	Notes               string        `json:"notes,omitempty"`
	ID                  string        `json:"id,omitempty"`
	IsRecurring         bool          `json:"is_recurring,omitempty"`
	RecurringID         string        `json:"recurring_id,omitempty"`
	ParentTransactionID string        `json:"parent_transaction_id,omitempty"`
}

type categoryJSON struct {
	Name        string `json:"name"`
	Parent      string `json:"parent,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	wire := transactionJSON{
		Date:                t.Date,
		Amount:              t.Amount.String(),
		Description:         t.Description,
		Type:                t.Type,
		Account:             t.Account,
		Reference:           t.Reference,
		Notes:               t.Notes,
		ID:                  t.ID,
		IsRecurring:         t.IsRecurring,
		RecurringID:         t.RecurringID,
		ParentTransactionID: t.ParentTransactionID,
	}
	if t.Category != nil {
		wire.Category = &categoryJSON{
			Name:        t.Category.Name,
			Parent:      t.Category.Parent,
			Description: t.Category.Description,
		}
	}
	if t.Balance != nil {
		wire.Balance = t.Balance.String()
	}
	return json.Marshal(wire)
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var wire transactionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(wire.Amount)
	if err != nil {
		return fmt.Errorf("parsing amount %q: %w", wire.Amount, err)
	}

	parsed := Transaction{
		Date:                wire.Date,
		Amount:              amount,
		Description:         wire.Description,
		Type:                wire.Type,
		Account:             wire.Account,
		Reference:           wire.Reference,
		Notes:               wire.Notes,
		ID:                  wire.ID,
		IsRecurring:         wire.IsRecurring,
		RecurringID:         wire.RecurringID,
		ParentTransactionID: wire.ParentTransactionID,
	}
	if wire.Category != nil {
		parsed.Category = &Category{
			Name:        wire.Category.Name,
			Parent:      wire.Category.Parent,
			Description: wire.Category.Description,
		}
	}
	if wire.Balance != "" {
		balance, err := decimal.NewFromString(wire.Balance)
		if err != nil {
			return fmt.Errorf("parsing balance %q: %w", wire.Balance, err)
		}
		parsed.Balance = &balance
	}
	if err := parsed.Validate(); err != nil {
		return err
	}

	*t = parsed
	return nil
}
