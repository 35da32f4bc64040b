// Package recurring detects transactions that represent the same recurring
// obligation (subscriptions, bills) by grouping normalized descriptions and
// scoring how regular each group looks.
package recurring

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/transaction"
)

// DefaultMinOccurrences is the evidence floor: fewer sightings of a merchant
// cannot establish a recurring pattern.
const DefaultMinOccurrences = 3

const (
	occurrenceWeight  = 0.4
	consistencyWeight = 0.3
	regularityWeight  = 0.3

	// Ten or more occurrences max out the occurrence score.
	occurrenceCeiling = 10.0
)

var (
	// Runs of 4+ digits are assumed to be transaction or reference IDs.
	// Shorter runs ("Store #5", the day in "12/15/") are kept.
	longDigits    = regexp.MustCompile(`\d{4,}`)
	companySuffix = regexp.MustCompile(`\s+(inc|llc|ltd|corp)\.?$`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Normalize reduces a description to its grouping key: lowercased, trimmed,
// long digit runs removed, trailing company suffix dropped, whitespace
// collapsed. "NETFLIX.COM 12/15/2024 #98765" becomes "netflix.com 12/15/ #".
func Normalize(description string) string {
	normalized := strings.ToLower(strings.TrimSpace(description))
	normalized = longDigits.ReplaceAllString(normalized, "")
	normalized = companySuffix.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(whitespace.ReplaceAllString(normalized, " "))
	return normalized
}

// Detector analyzes a read-only snapshot of transactions. It never mutates
// the snapshot; MarkRecurring returns annotated copies.
type Detector struct {
	transactions []transaction.Transaction
	logger       *logger.Logger
}

func NewDetector(ts []transaction.Transaction, log *logger.Logger) *Detector {
	return &Detector{transactions: ts, logger: log}
}

// Detect groups transactions by normalized description, rejects groups with
// fewer than minOccurrences members or without a clear periodic pattern, and
// returns the surviving groups sorted by confidence descending.
func (d *Detector) Detect(minOccurrences int) []transaction.RecurringTransaction {
	if minOccurrences <= 0 {
		minOccurrences = DefaultMinOccurrences
	}

	groups := map[string][]transaction.Transaction{}
	var keys []string
	for _, t := range d.transactions {
		key := Normalize(t.Description)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], t)
	}

	var detected []transaction.RecurringTransaction
	for _, key := range keys {
		group := groups[key]
		if len(group) < minOccurrences {
			continue
		}

		frequency, ok := analyzeFrequency(group)
		if !ok {
			// Repeated merchant without a regular interval: frequent
			// coffee runs, not a bill.
			d.logger.Debug("no periodic pattern", "pattern", key, "occurrences", len(group))
			continue
		}

		amounts := absoluteAmounts(group)
		lastSeen := latestDate(group)
		representative := group[0]

		rt := transaction.RecurringTransaction{
			ID:                 uuid.NewString(),
			DescriptionPattern: key,
			Amount:             decimal.Avg(amounts[0], amounts[1:]...),
			Frequency:          frequency,
			Confidence:         confidence(group),
			Category:           representative.Category,
			Account:            representative.Account,
			LastSeen:           lastSeen,
			NextExpected:       predictNext(lastSeen, frequency),
			TransactionCount:   len(group),
		}

		if variance := amountVariance(amounts); len(group) > 1 && !variance.IsZero() {
			rt.AmountVariance = &variance
		}

		detected = append(detected, rt)
	}

	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})

	return detected
}

// MarkRecurring returns a copy of the snapshot where every transaction whose
// normalized description matches a detected group carries the recurring flag
// and the group's id. Everything else passes through unchanged.
func (d *Detector) MarkRecurring(detected []transaction.RecurringTransaction) []transaction.Transaction {
	byPattern := make(map[string]transaction.RecurringTransaction, len(detected))
	for _, rt := range detected {
		byPattern[rt.DescriptionPattern] = rt
	}

	out := make([]transaction.Transaction, 0, len(d.transactions))
	for _, t := range d.transactions {
		if rt, ok := byPattern[Normalize(t.Description)]; ok {
			t.IsRecurring = true
			t.RecurringID = rt.ID
		}
		out = append(out, t)
	}

	return out
}

// analyzeFrequency classifies a group's mean day-gap into a frequency band.
// Groups whose mean gap falls outside every band have no clear periodic
// pattern and are rejected.
func analyzeFrequency(group []transaction.Transaction) (transaction.Frequency, bool) {
	gaps := dayGaps(group)
	if len(gaps) == 0 {
		return "", false
	}

	total := 0
	for _, gap := range gaps {
		total += gap
	}
	mean := float64(total) / float64(len(gaps))

	switch {
	case mean >= 25 && mean <= 35:
		return transaction.Monthly, true
	case mean >= 6 && mean <= 8:
		return transaction.Weekly, true
	case mean >= 360 && mean <= 370:
		return transaction.Yearly, true
	default:
		return "", false
	}
}

// confidence scores how likely the group is a genuine recurring obligation:
// a weighted sum of occurrence count, amount consistency and interval
// regularity, clamped to [0,1].
func confidence(group []transaction.Transaction) float64 {
	occurrenceScore := math.Min(float64(len(group))/occurrenceCeiling, 1.0)

	amounts := absoluteAmounts(group)
	consistencyScore := 0.5
	if len(amounts) > 0 {
		maxAmount := amounts[0]
		minAmount := amounts[0]
		for _, a := range amounts[1:] {
			if a.GreaterThan(maxAmount) {
				maxAmount = a
			}
			if a.LessThan(minAmount) {
				minAmount = a
			}
		}
		variance := 1.0
		if maxAmount.IsPositive() {
			spread, _ := maxAmount.Sub(minAmount).Div(maxAmount).Float64()
			variance = spread
		}
		consistencyScore = math.Max(0, 1.0-variance)
	}

	gaps := dayGaps(group)
	regularityScore := 0.5
	if len(gaps) > 0 {
		maxGap := gaps[0]
		minGap := gaps[0]
		for _, gap := range gaps[1:] {
			if gap > maxGap {
				maxGap = gap
			}
			if gap < minGap {
				minGap = gap
			}
		}
		variance := 0.0
		if maxGap > 0 {
			variance = float64(maxGap-minGap) / float64(maxGap)
		}
		regularityScore = math.Max(0, 1.0-variance)
	}

	score := occurrenceScore*occurrenceWeight +
		consistencyScore*consistencyWeight +
		regularityScore*regularityWeight

	return math.Min(1.0, math.Max(0.0, score))
}

// predictNext uses fixed day offsets rather than calendar month arithmetic.
// Monthly predictions drift against actual billing dates over time; known
// limitation.
func predictNext(lastSeen transaction.Date, frequency transaction.Frequency) transaction.Date {
	switch frequency {
	case transaction.Weekly:
		return lastSeen.AddDays(7)
	case transaction.Yearly:
		return lastSeen.AddDays(365)
	case transaction.Monthly:
		fallthrough
	default:
		return lastSeen.AddDays(30)
	}
}

func dayGaps(group []transaction.Transaction) []int {
	if len(group) < 2 {
		return nil
	}

	dates := make([]transaction.Date, 0, len(group))
	for _, t := range group {
		dates = append(dates, t.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, dates[i].DaysSince(dates[i-1]))
	}
	return gaps
}

func absoluteAmounts(group []transaction.Transaction) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(group))
	for _, t := range group {
		amounts = append(amounts, t.AbsoluteAmount())
	}
	return amounts
}

func amountVariance(amounts []decimal.Decimal) decimal.Decimal {
	maxAmount := amounts[0]
	minAmount := amounts[0]
	for _, a := range amounts[1:] {
		if a.GreaterThan(maxAmount) {
			maxAmount = a
		}
		if a.LessThan(minAmount) {
			minAmount = a
		}
	}
	return maxAmount.Sub(minAmount)
}

func latestDate(group []transaction.Transaction) transaction.Date {
	latest := group[0].Date
	for _, t := range group[1:] {
		if t.Date.After(latest) {
			latest = t.Date
		}
	}
	return latest
}
