package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/sheetsync/sheetsync/table"
	"github.com/sheetsync/sheetsync/tools"
)

var GetCmd = Get{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets worksheet and stores it to a local TSV or CSV file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV (or CSV) file. The worksheet is the sheet")
	fmt.Println("  identified by the gid in the URL, or the first sheet if the URL does not have a gid.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync --debug get --credentials "credentials.json" \`)
	fmt.Println(`                          --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0" \`)
	fmt.Println(`                          --file "example.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or CSV file name (by extension). Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if cmd.debug {
		log.Debugf("spreadsheet:%v  file:%v", cmd.url, cmd.file)
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

	if err := write(cmd.file, data); err != nil {
		return fmt.Errorf("error creating %v (%w)", cmd.file, err)
	}

	log.Infof("retrieved %v rows to file %s", len(data.Rows), cmd.file)

	return nil
}

// write stores the table to a temporary file and then renames it, so that an existing file is
// only replaced by a complete download.
func write(file string, data *table.Table) error {
	comma := '\t'
	if strings.EqualFold(filepath.Ext(file), ".csv") {
		comma = ','
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sheetsync-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := table.WriteCSV(tmp, data, comma); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
