package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/uhppoted/uhppoted-lib/log"
)

var AuthoriseCmd = Authorise{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	in: os.Stdin,
}

type Authorise struct {
	command
	in io.Reader
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises sheetsync to access Google Sheets"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises sheetsync to access Google Sheets on behalf of the user and stores the")
	fmt.Println("  OAuth2 token in the tokens directory. Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync authorise --credentials "credentials.json"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, revisions, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.tokens, "tokens", cmd.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	b, err := os.ReadFile(cmd.credentials)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return fmt.Errorf("invalid credentials (%w)", err)
	}

	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Println()
	fmt.Println("  Open the following link in your browser then enter the authorisation code:")
	fmt.Println()
	fmt.Printf("  %v\n", url)
	fmt.Println()
	fmt.Print("  Code: ")

	var code string
	if _, err := fmt.Fscan(cmd.in, &code); err != nil {
		return fmt.Errorf("unable to read authorisation code (%w)", err)
	}

	token, err := config.Exchange(context.Background(), strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("unable to retrieve token (%w)", err)
	}

	file := tokenFile(cmd.credentials, SHEETS, cmd.tokenDir())
	if err := saveToken(file, token); err != nil {
		return err
	}

	log.Infof("saved authorisation token to %v", file)

	return nil
}
