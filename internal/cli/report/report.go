package report

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/report"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/util"
)

type reportCommand struct{}

func NewCommand() cli.Command {
	return reportCommand{}
}

func (c reportCommand) Description() string {
	return "Print a monthly spending report"
}

var (
	month   int
	year    int
	verbose bool
)

func (c reportCommand) SetFlags(fs *flag.FlagSet) {
	// Default to the previous month, the most recent complete one.
	previous := time.Now().AddDate(0, -1, 0)
	fs.IntVar(&month, "month", int(previous.Month()), "month of the report")
	fs.IntVar(&year, "year", previous.Year(), "year of the report")
	fs.BoolVar(&verbose, "v", false, "include per-category patterns")
}

func (c reportCommand) Run(_ *config.Config, store storage.Store, _ *category.Mapper, _ *logger.Logger) error {
	ts, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("unable to load transactions: %w", err)
	}

	analyzer := report.NewAnalyzer(ts)
	summary, err := analyzer.MonthlySummary(year, month)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d\n\n", time.Month(month).String(), year)
	fmt.Printf("Income:   %s\n", util.ColorOutput(util.FormatMoney(summary.TotalIncome, ".", ","), "green", "bold"))
	fmt.Printf("Expenses: %s\n", util.ColorOutput(util.FormatMoney(summary.TotalExpenses, ".", ","), "red"))
	fmt.Printf("Net:      %s\n", util.FormatMoney(summary.NetAmount, ".", ","))
	if rate, ok := summary.SavingsRate(); ok {
		fmt.Printf("Savings:  %.1f%%\n", rate)
	}
	fmt.Printf("Transactions: %d\n", summary.TransactionCount)

	if len(summary.CategoryBreakdown) > 0 {
		fmt.Println("\nBy category:")
		names := maps.Keys(summary.CategoryBreakdown)
		sort.Slice(names, func(i, j int) bool {
			return summary.CategoryBreakdown[names[i]].GreaterThan(summary.CategoryBreakdown[names[j]])
		})
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, util.FormatMoney(summary.CategoryBreakdown[name], ".", ","))
		}
	}

	if verbose {
		fmt.Println("\nSpending patterns:")
		for _, pattern := range analyzer.TopCategories(0) {
			trend := pattern.Trend
			if trend == "" {
				trend = "n/a"
			}
			fmt.Printf("  %s: total %s, avg %s over %d transactions (%.1f%% of spending, %s)\n",
				pattern.Category,
				util.FormatMoney(pattern.TotalAmount, ".", ","),
				util.FormatMoney(pattern.AverageTransaction, ".", ","),
				pattern.TransactionCount,
				pattern.PercentageOfTotal,
				trend)
		}
	}

	return nil
}
