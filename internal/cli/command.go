// Package cli defines the interface every subcommand implements.
package cli

import (
	"flag"

	"github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
)

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(conf *config.Config, store storage.Store, mapper *category.Mapper, logger *logger.Logger) error
}
