// Package importer turns bank statement CSV exports into transactions. It
// handles a single header-mapped dialect; the column names just have to be
// recognizable. Format auto-detection is deliberately out of scope.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/transaction"
)

type Options struct {
	// DateLayout is the Go time layout of the date column.
	DateLayout string
	// Account tags every parsed transaction with an account id.
	Account string
}

var columnAliases = map[string]string{
	"date":             "date",
	"transaction date": "date",
	"description":      "description",
	"details":          "description",
	"memo":             "description",
	"amount":           "amount",
	"balance":          "balance",
	"reference":        "reference",
	"ref":              "reference",
	"type":             "type",
	"transaction type": "type",
}

// Parse reads CSV rows into transactions. The first row must be a header
// naming at least date, description and amount columns. Row-level failures
// are collected and parsing continues; a malformed header or unreadable
// input aborts.
func Parse(r io.Reader, opts Options) ([]transaction.Transaction, []error) {
	if opts.DateLayout == "" {
		opts.DateLayout = "2006-01-02"
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("reading CSV header: %w", err)}
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, []error{err}
	}

	var ts []transaction.Transaction
	var errs []error
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		t, err := parseRecord(record, columns, opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		ts = append(ts, t)
	}

	return ts, errs
}

func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}

	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing a %s column", required)
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns map[string]int, opts Options) (transaction.Transaction, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field("date"), opts.DateLayout)
	if err != nil {
		return transaction.Transaction{}, err
	}

	amount, err := parseAmount(field("amount"))
	if err != nil {
		return transaction.Transaction{}, err
	}

	t, err := transaction.New(date, amount, field("description"), parseType(field("type"), amount))
	if err != nil {
		return transaction.Transaction{}, err
	}

	t.Account = opts.Account
	t.Reference = field("reference")
	if raw := field("balance"); raw != "" {
		balance, err := parseAmount(raw)
		if err != nil {
			return transaction.Transaction{}, err
		}
		t.Balance = &balance
	}

	return t, nil
}

func parseDate(raw, layout string) (transaction.Date, error) {
	date, err := transaction.ParseDate(raw)
	if err == nil {
		return date, nil
	}

	t, err := time.Parse(layout, raw)
	if err != nil {
		return transaction.Date{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return transaction.DateOf(t), nil
}

// parseAmount accepts currency symbols, thousands separators and
// parenthesized negatives.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(raw)
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return amount, nil
}

func parseType(raw string, amount decimal.Decimal) transaction.Type {
	switch strings.ToLower(raw) {
	case "debit":
		return transaction.Debit
	case "credit":
		return transaction.Credit
	case "transfer":
		return transaction.Transfer
	}

	if amount.IsNegative() {
		return transaction.Debit
	}
	return transaction.Credit
}
