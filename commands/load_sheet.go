package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/sheetsync/sheetsync/table"
	"github.com/sheetsync/sheetsync/tools"
)

var LoadSheetCmd = LoadSheet{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

type LoadSheet struct {
	command
}

func (cmd *LoadSheet) Name() string {
	return "load-sheet"
}

func (cmd *LoadSheet) Description() string {
	return "Displays a Google Sheets worksheet as a Markdown table"
}

func (cmd *LoadSheet) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *LoadSheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] load-sheet [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves a Google Sheets worksheet and displays it as a Markdown table")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync load-sheet --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0"`)
	fmt.Println()
}

func (cmd *LoadSheet) FlagSet() *flag.FlagSet {
	return cmd.flagset("load-sheet")
}

func (cmd *LoadSheet) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	ctx := context.Background()

	t, err := cmd.toolset(ctx, tools.Options{})
	if err != nil {
		return err
	}

	data, err := t.LoadSheet(ctx, cmd.url)
	if err != nil {
		return err
	}

	fmt.Println(table.Markdown(data))

	return nil
}
