package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sheetsync/sheetsync/httpd"
)

var ServeCmd = Serve{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
	},

	sync: sync{
		logRetention: 30,
	},

	bind:    "127.0.0.1:8080",
	timeout: httpd.DEFAULT_TIMEOUT,
}

type Serve struct {
	command
	sync
	bind    string
	timeout time.Duration
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs an HTTP server for the sheet tools"
}

func (cmd *Serve) Usage() string {
	return "--credentials <file> --bind <address>"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Serves the sheet tools over HTTP:")
	fmt.Println()
	fmt.Println("    GET  /tools         lists the tools and their arguments")
	fmt.Println("    POST /tools/{name}  invokes a tool with a JSON object of arguments")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    sheetsync serve --credentials "credentials.json" --bind 127.0.0.1:8080`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("serve", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, revisions, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.tokens, "tokens", cmd.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP server bind address")
	flagset.DurationVar(&cmd.timeout, "timeout", cmd.timeout, "Maximum time for a tool request")
	cmd.sync.flags(flagset)

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.bind) == "" {
		return fmt.Errorf("--bind is a required option")
	}

	if err := cmd.sync.validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	t, err := cmd.toolset(ctx, cmd.options())
	if err != nil {
		return err
	}

	return httpd.NewHTTPD(t, cmd.timeout, cmd.debug).Run(ctx, cmd.bind)
}
