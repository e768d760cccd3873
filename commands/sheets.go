package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/sheetsync/sheetsync/tools"
)

var ColumnNamesCmd = ColumnNames{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

var SheetNamesCmd = SheetNames{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

var SheetURLCmd = SheetURL{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},
}

type ColumnNames struct {
	command
}

type SheetNames struct {
	command
}

type SheetURL struct {
	command
	sheet string
}

func (cmd *ColumnNames) Name() string {
	return "get-column-names"
}

func (cmd *ColumnNames) Description() string {
	return "Lists the column names (header row) of a Google Sheets worksheet"
}

func (cmd *ColumnNames) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *ColumnNames) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get-column-names [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Lists the column names in the header row of a Google Sheets worksheet, as displayed")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *ColumnNames) FlagSet() *flag.FlagSet {
	return cmd.flagset("get-column-names")
}

func (cmd *ColumnNames) Execute(args ...any) error {
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

	names, err := t.ColumnNames(ctx, cmd.url)
	if err != nil {
		return err
	}

	for _, v := range names {
		fmt.Println(v)
	}

	return nil
}

func (cmd *SheetNames) Name() string {
	return "get-sheet-names"
}

func (cmd *SheetNames) Description() string {
	return "Lists the worksheets in a Google Sheets spreadsheet"
}

func (cmd *SheetNames) Usage() string {
	return "--credentials <file> --url <url>"
}

func (cmd *SheetNames) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get-sheet-names [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Lists the worksheet names in a Google Sheets spreadsheet, in tab order")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *SheetNames) FlagSet() *flag.FlagSet {
	return cmd.flagset("get-sheet-names")
}

func (cmd *SheetNames) Execute(args ...any) error {
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

	names, err := t.SheetNames(ctx, cmd.url)
	if err != nil {
		return err
	}

	for _, v := range names {
		fmt.Println(v)
	}

	return nil
}

func (cmd *SheetURL) Name() string {
	return "detect-sheet-url"
}

func (cmd *SheetURL) Description() string {
	return "Displays the URL of a named worksheet in a Google Sheets spreadsheet"
}

func (cmd *SheetURL) Usage() string {
	return "--credentials <file> --url <url> --sheet <name>"
}

func (cmd *SheetURL) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] detect-sheet-url [options] --url <URL> --sheet <name>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the URL (including the gid) of a worksheet identified by name")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync detect-sheet-url --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" --sheet "Members"`)
	fmt.Println()
}

func (cmd *SheetURL) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("detect-sheet-url")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet name")

	return flagset
}

func (cmd *SheetURL) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	ctx := context.Background()

	t, err := cmd.toolset(ctx, tools.Options{})
	if err != nil {
		return err
	}

	url, err := t.SheetURL(ctx, cmd.url, cmd.sheet)
	if err != nil {
		return err
	}

	fmt.Println(url)

	return nil
}
