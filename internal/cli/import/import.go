package importcmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/importer"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/workflow"
)

type importCommand struct{}

func NewCommand() cli.Command {
	return importCommand{}
}

func (c importCommand) Description() string {
	return "Import a bank statement CSV export"
}

var (
	filePath      string
	account       string
	noCategorize  bool
	keepDuplicate bool
)

func (c importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&filePath, "f", "", "CSV file to import")
	fs.StringVar(&account, "a", "", "account id to tag imported transactions with")
	fs.BoolVar(&noCategorize, "no-categorize", false, "skip automatic categorization")
	fs.BoolVar(&keepDuplicate, "keep-duplicates", false, "do not skip transactions already stored")
}

func (c importCommand) Run(conf *config.Config, store storage.Store, mapper *category.Mapper, log *logger.Logger) error {
	if filePath == "" {
		return fmt.Errorf("you must provide a file to import with -f")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", filePath, err)
	}
	defer file.Close()

	parsed, errs := importer.Parse(file, importer.Options{
		DateLayout: conf.DateLayout,
		Account:    account,
	})
	for _, err := range errs {
		log.Warn("skipped row", "error", err)
	}

	opts := workflow.DefaultOptions()
	opts.AutoCategorize = !noCategorize
	opts.SkipDuplicates = !keepDuplicate

	_, stats, err := workflow.New(store, mapper, log).Process(parsed, opts)
	if err != nil {
		return fmt.Errorf("unable to import transactions: %w", err)
	}

	fmt.Printf("parsed %d transactions (%d rows skipped)\n", stats.TotalParsed, len(errs))
	fmt.Printf("stored %d new, %d duplicates skipped\n", stats.NewTransactions, stats.DuplicatesSkipped)
	if opts.AutoCategorize {
		fmt.Printf("categorized %d (%.1f%%)\n", stats.Categorized, stats.CategorizationRate)
	}

	return nil
}
