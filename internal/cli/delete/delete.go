package delete

import (
	"flag"
	"fmt"
	"strings"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
)

type deleteCommand struct{}

func NewCommand() cli.Command {
	return deleteCommand{}
}

func (c deleteCommand) Description() string {
	return "Delete stored transactions by id"
}

var ids string

func (c deleteCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&ids, "ids", "", "comma separated transaction ids")
}

func (c deleteCommand) Run(_ *config.Config, store storage.Store, _ *category.Mapper, _ *logger.Logger) error {
	if ids == "" {
		return fmt.Errorf("you must provide -ids")
	}

	var toDelete []string
	for _, id := range strings.Split(ids, ",") {
		if id = strings.TrimSpace(id); id != "" {
			toDelete = append(toDelete, id)
		}
	}

	deleted, err := store.DeleteMultiple(toDelete)
	if err != nil {
		return fmt.Errorf("unable to delete transactions: %w", err)
	}

	fmt.Printf("deleted %d transactions\n", deleted)
	return nil
}
