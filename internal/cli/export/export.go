package exportcmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/export"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
)

type exportCommand struct{}

func NewCommand() cli.Command {
	return exportCommand{}
}

func (c exportCommand) Description() string {
	return "Export stored transactions to CSV or JSON"
}

var (
	format string
	output string
)

func (c exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&format, "format", "csv", "output format: csv or json")
	fs.StringVar(&output, "o", "", "output file (stdout when omitted)")
}

func (c exportCommand) Run(_ *config.Config, store storage.Store, _ *category.Mapper, _ *logger.Logger) error {
	ts, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("unable to load transactions: %w", err)
	}

	writer := os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", output, err)
		}
		defer file.Close()
		writer = file
	}

	switch format {
	case "csv":
		return export.CSV(writer, ts)
	case "json":
		return export.JSON(writer, ts)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
