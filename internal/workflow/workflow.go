// Package workflow sequences the ingestion pipeline: duplicate check,
// categorization, persistence. It holds no logic of its own beyond wiring
// the engines together and tallying statistics.
package workflow

import (
	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/recurring"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/transaction"
)

type Options struct {
	AutoCategorize      bool
	OverwriteCategories bool
	CheckDuplicates     bool
	SkipDuplicates      bool
}

func DefaultOptions() Options {
	return Options{
		AutoCategorize:  true,
		CheckDuplicates: true,
		SkipDuplicates:  true,
	}
}

type Stats struct {
	TotalParsed        int
	NewTransactions    int
	DuplicatesFound    int
	DuplicatesSkipped  int
	Categorized        int
	Uncategorized      int
	CategorizationRate float64
}

type Workflow struct {
	store       storage.Store
	categorizer *category.Categorizer
	logger      *logger.Logger
}

func New(store storage.Store, mapper *category.Mapper, log *logger.Logger) *Workflow {
	return &Workflow{
		store:       store,
		categorizer: category.NewCategorizer(mapper),
		logger:      log,
	}
}

// Process runs already-parsed transactions through duplicate filtering,
// categorization and persistence, returning the processed records and the
// run statistics.
func (w *Workflow) Process(parsed []transaction.Transaction, opts Options) ([]transaction.Transaction, Stats, error) {
	stats := Stats{TotalParsed: len(parsed)}
	ts := parsed

	if opts.CheckDuplicates {
		duplicates, err := w.store.CheckDuplicates(ts)
		if err != nil {
			return nil, stats, err
		}
		stats.DuplicatesFound = len(duplicates)

		if len(duplicates) > 0 && opts.SkipDuplicates {
			w.logger.Warn("found duplicate transactions", "count", len(duplicates))
			duplicateFingerprints := make(map[string]bool, len(duplicates))
			for _, t := range duplicates {
				duplicateFingerprints[storage.Fingerprint(t)] = true
			}

			kept := make([]transaction.Transaction, 0, len(ts))
			for _, t := range ts {
				if !duplicateFingerprints[storage.Fingerprint(t)] {
					kept = append(kept, t)
				}
			}
			stats.DuplicatesSkipped = len(ts) - len(kept)
			ts = kept
		}
	}

	if opts.AutoCategorize {
		var catStats category.Stats
		ts, catStats = w.categorizer.CategorizeAll(ts, opts.OverwriteCategories)
		stats.Categorized = catStats.Categorized
		stats.Uncategorized = catStats.Uncategorized
		stats.CategorizationRate = catStats.Rate()
		w.logger.Info("categorized transactions",
			"categorized", catStats.Categorized,
			"total", catStats.Total,
			"rate", catStats.Rate())
	}

	added, err := w.store.Save(ts)
	if err != nil {
		return nil, stats, err
	}
	stats.NewTransactions = added

	return ts, stats, nil
}

// Recategorize reloads the stored set, re-runs the mapper over it and saves
// the updates record by record.
func (w *Workflow) Recategorize(overwrite bool) (category.Stats, error) {
	ts, err := w.store.LoadAll()
	if err != nil {
		return category.Stats{}, err
	}

	categorized, stats := w.categorizer.CategorizeAll(ts, overwrite)
	for i, t := range categorized {
		if t.Category == nil || (ts[i].Category != nil && ts[i].Category.Equal(*t.Category)) {
			continue
		}
		if err := w.store.Update(t); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// ApplyRecurring runs recurring detection over the stored set and writes the
// recurring flags back onto matching transactions. Returns the number of
// transactions annotated.
func (w *Workflow) ApplyRecurring(minOccurrences int) (int, error) {
	ts, err := w.store.LoadAll()
	if err != nil {
		return 0, err
	}

	detector := recurring.NewDetector(ts, w.logger)
	detected := detector.Detect(minOccurrences)
	if len(detected) == 0 {
		return 0, nil
	}

	marked := detector.MarkRecurring(detected)
	annotated := 0
	for i, t := range marked {
		if !t.IsRecurring || ts[i].RecurringID == t.RecurringID {
			continue
		}
		if err := w.store.Update(t); err != nil {
			return annotated, err
		}
		annotated++
	}

	w.logger.Info("applied recurring flags", "patterns", len(detected), "transactions", annotated)
	return annotated, nil
}
