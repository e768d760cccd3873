package main

import (
	"flag"
	"fmt"
	"os"

	lib "github.com/uhppoted/uhppoted-lib/command"
	"github.com/uhppoted/uhppoted-lib/log"

	"github.com/sheetsync/sheetsync/commands"
)

var cli = []lib.Command{
	&commands.AuthoriseCmd,
	&commands.GetCmd,
	&commands.LoadSheetCmd,
	&commands.ColumnNamesCmd,
	&commands.SheetURLCmd,
	&commands.SheetNamesCmd,
	&commands.UploadCSVCmd,
	&commands.UploadSheetCmd,
	&commands.ServeCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	log.SetDebug(options.Debug)

	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatalf("%v", err)
	}
}
