package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/sheetsync/sheetsync/spreadsheet"
	"github.com/sheetsync/sheetsync/table"
	"github.com/sheetsync/sheetsync/tools"
)

var UploadCSVCmd = UploadCSV{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	sync: sync{
		logRetention: 30,
	},
}

var UploadSheetCmd = UploadSheet{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	sync: sync{
		logRetention: 30,
	},
}

type UploadCSV struct {
	command
	sync
	file string
}

type UploadSheet struct {
	command
	sync
	from string
}

// sync holds the options for the commands that merge data into a worksheet.
type sync struct {
	dryrun       bool
	logRange     string
	logRetention uint
}

func (s *sync) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&s.logRange, "log-range", s.logRange, "Spreadsheet range for the sync log e.g. 'Log!A1:F'. Disabled if not set")
	flagset.UintVar(&s.logRetention, "log-retention", s.logRetention, fmt.Sprintf("Sync log records older than 'log-retention' days are automatically pruned. Defaults to %v", s.logRetention))
	flagset.BoolVar(&s.dryrun, "dryrun", s.dryrun, "Reports the changes without updating the worksheet")
}

func (s *sync) validate() error {
	if area := strings.TrimSpace(s.logRange); area != "" {
		if err := spreadsheet.ValidateArea(area); err != nil {
			return fmt.Errorf("invalid --log-range (%w)", err)
		}
	}

	return nil
}

func (s *sync) options() tools.Options {
	return tools.Options{
		DryRun:       s.dryrun,
		LogRange:     strings.TrimSpace(s.logRange),
		LogRetention: s.logRetention,
	}
}

func (s *sync) report(result *table.Result) {
	if s.dryrun {
		log.Infof("DRY RUN - no changes made")
	}

	fmt.Println(tools.Summary(result))
}

func (cmd *UploadCSV) Name() string {
	return "upload-csv"
}

func (cmd *UploadCSV) Description() string {
	return "Uploads a CSV or TSV file to a Google Sheets worksheet"
}

func (cmd *UploadCSV) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *UploadCSV) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] upload-csv [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the worksheet columns that match the CSV file columns (by header name) with the")
	fmt.Println("  CSV file data and resizes the worksheet to the number of rows in the file. Worksheet")
	fmt.Println("  columns that are not in the file are left as is. Files with a .tsv extension are tab")
	fmt.Println("  separated.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync --debug upload-csv --credentials "credentials.json" \`)
	fmt.Println(`                                 --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0" \`)
	fmt.Println(`                                 --file "members.csv" \`)
	fmt.Println(`                                 --log-range "Log!A1:F"`)
	fmt.Println()
}

func (cmd *UploadCSV) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("upload-csv")

	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV (or TSV) file")
	cmd.sync.flags(flagset)

	return flagset
}

func (cmd *UploadCSV) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.command.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if err := cmd.sync.validate(); err != nil {
		return err
	}

	if cmd.debug {
		log.Debugf("file:%v  spreadsheet:%v  log:%v", cmd.file, cmd.url, cmd.logRange)
	}

	ctx := context.Background()

	t, err := cmd.toolset(ctx, cmd.options())
	if err != nil {
		return err
	}

	result, err := t.UploadCSV(ctx, cmd.file, cmd.url)
	if err != nil {
		return err
	}

	cmd.report(result)

	return nil
}

func (cmd *UploadSheet) Name() string {
	return "upload-sheet"
}

func (cmd *UploadSheet) Description() string {
	return "Copies a Google Sheets worksheet to another worksheet"
}

func (cmd *UploadSheet) Usage() string {
	return "--credentials <file> --from <url> --url <url>"
}

func (cmd *UploadSheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] upload-sheet [options] --from <URL> --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Replaces the destination worksheet columns that match the source worksheet columns (by")
	fmt.Println("  header name) and resizes the destination to the number of rows in the source.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync upload-sheet --from "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0" \`)
	fmt.Println(`                           --url  "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=1234"`)
	fmt.Println()
}

func (cmd *UploadSheet) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("upload-sheet")

	flagset.StringVar(&cmd.from, "from", cmd.from, "Source worksheet URL")
	cmd.sync.flags(flagset)

	return flagset
}

func (cmd *UploadSheet) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.command.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.from) == "" {
		return fmt.Errorf("--from is a required option")
	} else if _, _, err := spreadsheet.ParseURL(cmd.from); err != nil {
		return err
	}

	if err := cmd.sync.validate(); err != nil {
		return err
	}

	if cmd.debug {
		log.Debugf("from:%v  to:%v  log:%v", cmd.from, cmd.url, cmd.logRange)
	}

	ctx := context.Background()

	t, err := cmd.toolset(ctx, cmd.options())
	if err != nil {
		return err
	}

	result, err := t.CopySheet(ctx, cmd.from, cmd.url)
	if err != nil {
		return err
	}

	cmd.report(result)

	return nil
}
