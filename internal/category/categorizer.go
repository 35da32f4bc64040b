package category

import "github.com/banktrace/banktrace/internal/transaction"

// Stats summarizes a batch categorization pass.
type Stats struct {
	Total              int
	Categorized        int
	Uncategorized      int
	AlreadyCategorized int
	NewlyCategorized   int
}

// Rate returns the share of transactions that ended up categorized, as a
// percentage.
func (s Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Categorized) / float64(s.Total) * 100
}

// Categorizer applies a mapper to transactions. It never mutates its input;
// categorized transactions are copies.
type Categorizer struct {
	mapper *Mapper
}

func NewCategorizer(mapper *Mapper) *Categorizer {
	if mapper == nil {
		mapper = NewMapper()
	}
	return &Categorizer{mapper: mapper}
}

// Categorize assigns a category to a single transaction. An existing
// category is preserved unless overwrite is set.
func (c *Categorizer) Categorize(t transaction.Transaction, overwrite bool) transaction.Transaction {
	if t.Category != nil && !overwrite {
		return t
	}

	category := c.mapper.Classify(t.Description)
	if category == nil {
		return t
	}

	t.Category = category
	return t
}

// CategorizeAll runs Categorize over the whole batch and tallies stats.
func (c *Categorizer) CategorizeAll(ts []transaction.Transaction, overwrite bool) ([]transaction.Transaction, Stats) {
	out := make([]transaction.Transaction, 0, len(ts))
	stats := Stats{Total: len(ts)}

	for _, t := range ts {
		had := t.Category != nil
		categorized := c.Categorize(t, overwrite)

		if categorized.Category != nil {
			stats.Categorized++
			if had {
				stats.AlreadyCategorized++
			} else {
				stats.NewlyCategorized++
			}
		} else {
			stats.Uncategorized++
		}

		out = append(out, categorized)
	}

	return out, stats
}

// Uncategorized returns the transactions without a category.
func Uncategorized(ts []transaction.Transaction) []transaction.Transaction {
	var out []transaction.Transaction
	for _, t := range ts {
		if t.Category == nil {
			out = append(out, t)
		}
	}
	return out
}

// ByCategory returns the transactions assigned to the named category.
func ByCategory(ts []transaction.Transaction, name string) []transaction.Transaction {
	var out []transaction.Transaction
	for _, t := range ts {
		if t.Category != nil && t.Category.Name == name {
			out = append(out, t)
		}
	}
	return out
}
