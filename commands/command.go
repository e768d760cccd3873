package commands

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sheetsync/sheetsync/spreadsheet"
	"github.com/sheetsync/sheetsync/tools"
)

const APP = "sheetsync"

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

type Options struct {
	Debug bool
}

// command holds the options common to all the commands that access Google Sheets.
type command struct {
	workdir     string
	credentials string
	tokens      string
	url         string
	debug       bool
}

func (cmd *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, revisions, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.tokens, "tokens", cmd.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")

	return flagset
}

func (cmd *command) validate() error {
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if _, _, err := spreadsheet.ParseURL(cmd.url); err != nil {
		return err
	}

	return nil
}

func (cmd *command) tokenDir() string {
	if cmd.tokens != "" {
		return cmd.tokens
	}

	return filepath.Join(cmd.workdir, ".google")
}

// google returns an authorised Google Sheets client.
func (cmd *command) google(ctx context.Context) (*sheets.Service, error) {
	client, err := authorize(ctx, cmd.credentials, SHEETS, cmd.tokenDir())
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return google, nil
}

func (cmd *command) toolset(ctx context.Context, options tools.Options) (*tools.Tools, error) {
	google, err := cmd.google(ctx)
	if err != nil {
		return nil, err
	}

	return tools.NewTools(google, options), nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}
