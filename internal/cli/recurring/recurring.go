package recurringcmd

import (
	"flag"
	"fmt"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/recurring"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/util"
	"github.com/banktrace/banktrace/internal/workflow"
)

type recurringCommand struct{}

func NewCommand() cli.Command {
	return recurringCommand{}
}

func (c recurringCommand) Description() string {
	return "Detect recurring transactions (subscriptions, bills)"
}

var (
	minOccurrences int
	apply          bool
)

func (c recurringCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&minOccurrences, "min", recurring.DefaultMinOccurrences, "minimum occurrences to consider a pattern recurring")
	fs.BoolVar(&apply, "apply", false, "write recurring flags back onto stored transactions")
}

func (c recurringCommand) Run(_ *config.Config, store storage.Store, mapper *category.Mapper, log *logger.Logger) error {
	ts, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("unable to load transactions: %w", err)
	}

	detector := recurring.NewDetector(ts, log)
	detected := detector.Detect(minOccurrences)
	if len(detected) == 0 {
		fmt.Println("no recurring transactions detected")
		return nil
	}

	for _, rt := range detected {
		confidence := fmt.Sprintf("%.0f%%", rt.Confidence*100)
		if rt.Confidence >= 0.8 {
			confidence = util.ColorOutput(confidence, "green", "bold")
		} else if rt.Confidence < 0.5 {
			confidence = util.ColorOutput(confidence, "yellow")
		}
		fmt.Printf("%s  %s %s (%d occurrences, %s confidence, next expected %s)\n",
			rt.DescriptionPattern,
			util.FormatMoney(rt.Amount, ".", ","),
			rt.Frequency,
			rt.TransactionCount,
			confidence,
			rt.NextExpected)
	}

	if apply {
		annotated, err := workflow.New(store, mapper, log).ApplyRecurring(minOccurrences)
		if err != nil {
			return fmt.Errorf("unable to apply recurring flags: %w", err)
		}
		fmt.Printf("\nmarked %d transactions as recurring\n", annotated)
	}

	return nil
}
