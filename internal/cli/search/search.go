package search

import (
	"flag"
	"fmt"
	"sort"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/filter"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/transaction"
	"github.com/banktrace/banktrace/internal/util"
)

type searchCommand struct{}

func NewCommand() cli.Command {
	return searchCommand{}
}

func (c searchCommand) Description() string {
	return "Search stored transactions"
}

var (
	keyword       string
	categoryName  string
	account       string
	fromDate      string
	toDate        string
	onlyRecurring bool
)

func (c searchCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&keyword, "k", "", "keyword to match against description and notes")
	fs.StringVar(&categoryName, "category", "", "filter by category name")
	fs.StringVar(&account, "account", "", "filter by account id")
	fs.StringVar(&fromDate, "from", "", "earliest date (YYYY-MM-DD)")
	fs.StringVar(&toDate, "to", "", "latest date (YYYY-MM-DD)")
	fs.BoolVar(&onlyRecurring, "recurring", false, "only recurring transactions")
}

func (c searchCommand) Run(_ *config.Config, store storage.Store, _ *category.Mapper, _ *logger.Logger) error {
	query := filter.Query{
		Text:     keyword,
		Category: categoryName,
		Account:  account,
	}
	if fromDate != "" {
		date, err := transaction.ParseDate(fromDate)
		if err != nil {
			return fmt.Errorf("invalid -from date: %w", err)
		}
		query.DateFrom = &date
	}
	if toDate != "" {
		date, err := transaction.ParseDate(toDate)
		if err != nil {
			return fmt.Errorf("invalid -to date: %w", err)
		}
		query.DateTo = &date
	}
	if onlyRecurring {
		recurring := true
		query.IsRecurring = &recurring
	}

	ts, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("unable to load transactions: %w", err)
	}

	results := filter.Search(ts, query)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Before(results[j].Date)
	})

	for _, t := range results {
		amount := util.FormatMoney(t.Amount, ".", ",")
		if t.Amount.IsNegative() {
			amount = util.ColorOutput(amount, "red")
		} else {
			amount = util.ColorOutput(amount, "green")
		}
		categoryLabel := ""
		if t.Category != nil {
			categoryLabel = " [" + t.Category.Name + "]"
		}
		fmt.Printf("%s  %s  %s%s\n", t.Date, amount, t.Description, categoryLabel)
	}
	fmt.Printf("\n%d transactions\n", len(results))

	return nil
}
