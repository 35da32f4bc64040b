package categorycmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/exp/maps"

	categoryPkg "github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/workflow"
)

type categoryCommand struct{}

func NewCommand() cli.Command {
	return categoryCommand{}
}

func (c categoryCommand) Description() string {
	return "Inspect categorization rules and recategorize stored transactions"
}

var (
	list         bool
	addPattern   string
	addName      string
	addParent    string
	exportFile   string
	importFile   string
	recategorize bool
	overwrite    bool
)

func (c categoryCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&list, "list", false, "list known categories grouped by parent")
	fs.StringVar(&addPattern, "add", "", "pattern of a custom rule to add")
	fs.StringVar(&addName, "name", "", "category name for the custom rule")
	fs.StringVar(&addParent, "parent", "", "parent category for the custom rule")
	fs.StringVar(&exportFile, "export", "", "export the full rule list to a JSON file")
	fs.StringVar(&importFile, "import", "", "import rules from a JSON file")
	fs.BoolVar(&recategorize, "recategorize", false, "re-run categorization over stored transactions")
	fs.BoolVar(&overwrite, "overwrite", false, "overwrite existing categories when recategorizing")
}

func (c categoryCommand) Run(conf *config.Config, store storage.Store, mapper *categoryPkg.Mapper, log *logger.Logger) error {
	switch {
	case addPattern != "":
		if addName == "" {
			return fmt.Errorf("a custom rule needs -name")
		}
		if err := mapper.AddRule(addPattern, addName, addParent, false); err != nil {
			return err
		}
		rulesPath := filepath.Join(conf.DataDir, "custom_category_rules.json")
		if err := mapper.SaveRulesFile(rulesPath); err != nil {
			return fmt.Errorf("unable to save custom rules: %w", err)
		}
		fmt.Printf("added rule %q -> %s\n", addPattern, addName)
		return nil

	case importFile != "":
		file, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", importFile, err)
		}
		defer file.Close()

		added, err := mapper.ImportRules(file)
		if err != nil {
			log.Warn("some rules were rejected", "error", err)
		}
		fmt.Printf("imported %d rules\n", added)
		return nil

	case exportFile != "":
		file, err := os.Create(exportFile)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", exportFile, err)
		}
		defer file.Close()

		if err := mapper.ExportRules(file); err != nil {
			return fmt.Errorf("unable to export rules: %w", err)
		}
		fmt.Printf("exported %d rules to %s\n", len(mapper.Rules()), exportFile)
		return nil

	case recategorize:
		stats, err := workflow.New(store, mapper, log).Recategorize(overwrite)
		if err != nil {
			return fmt.Errorf("unable to recategorize: %w", err)
		}
		fmt.Printf("categorized %d/%d transactions (%.1f%%)\n", stats.Categorized, stats.Total, stats.Rate())
		return nil

	case list:
		fallthrough
	default:
		grouped := mapper.Categories()
		parents := maps.Keys(grouped)
		sort.Strings(parents)
		for _, parent := range parents {
			fmt.Println(parent)
			for _, name := range grouped[parent] {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	}
}
