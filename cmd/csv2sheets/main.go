package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/datagrove/csv2sheets/commands"
	"github.com/datagrove/csv2sheets/log"
)

var cli = []commands.Command{
	&commands.SyncCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.AuthoriseCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = commands.NewHelp(cli)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := commands.Parse(append(cli, help), flag.Args())
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx, &options)
		os.Exit(1)
	}

	logger := log.NewLogger(options.Debug)
	options.Logger = logger

	if err := cmd.Execute(ctx, &options); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Sync()
}
