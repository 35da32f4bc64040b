package transaction

import "github.com/shopspring/decimal"

type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// RecurringTransaction is a detected group of transactions that share a
// normalized description and a regular interval. It is recomputed on every
// detection run and only becomes authoritative when the flags are written
// back onto the stored transactions.
type RecurringTransaction struct {
	ID                 string           `json:"id"`
	DescriptionPattern string           `json:"description_pattern"`
	Amount             decimal.Decimal  `json:"amount"`
	Frequency          Frequency        `json:"frequency"`
	Confidence         float64          `json:"confidence"`
	Category           *Category        `json:"category,omitempty"`
	Account            string           `json:"account,omitempty"`
	LastSeen           Date             `json:"last_seen"`
	NextExpected       Date             `json:"next_expected"`
	TransactionCount   int              `json:"transaction_count"`
	AmountVariance     *decimal.Decimal `json:"amount_variance,omitempty"`
}
