package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	categoryPkg "github.com/banktrace/banktrace/internal/category"
	"github.com/banktrace/banktrace/internal/cli"
	categoryCmd "github.com/banktrace/banktrace/internal/cli/category"
	"github.com/banktrace/banktrace/internal/cli/delete"
	exportCmd "github.com/banktrace/banktrace/internal/cli/export"
	importCmd "github.com/banktrace/banktrace/internal/cli/import"
	recurringCmd "github.com/banktrace/banktrace/internal/cli/recurring"
	"github.com/banktrace/banktrace/internal/cli/report"
	"github.com/banktrace/banktrace/internal/cli/search"
	"github.com/banktrace/banktrace/internal/config"
	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage/jsonfile"
)

var configPath string

var subcommands = map[string]cli.Command{
	"import":    importCmd.NewCommand(),
	"report":    report.NewCommand(),
	"recurring": recurringCmd.NewCommand(),
	"category":  categoryCmd.NewCommand(),
	"search":    search.NewCommand(),
	"delete":    delete.NewCommand(),
	"export":    exportCmd.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "banktrace.toml", "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration: %s\n", err.Error())
		os.Exit(1)
	}

	log := logger.New(conf.Logger)

	store, err := jsonfile.New(conf.DataDir, log)
	if err != nil {
		log.Fatal("unable to open the transaction store", "error", err)
	}

	mapper := categoryPkg.NewMapper()
	rulesPath := filepath.Join(conf.DataDir, "custom_category_rules.json")
	if _, err := mapper.LoadRulesFile(rulesPath); err != nil {
		log.Warn("unable to load custom category rules", "path", rulesPath, "error", err)
	}

	if err := command.Run(conf, store, mapper, log); err != nil {
		log.Fatal("command failed", "command", commandName, "error", err)
	}
}

func printHelp() {
	printUsage()

	for c, cLogic := range subcommands {
		fmt.Printf("subcommand <%s>: %s\n", c, cLogic.Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: banktrace <subcommand> [flags]\n\n")
}
