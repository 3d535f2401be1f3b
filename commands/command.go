package commands

import (
	"context"
	"flag"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/datagrove/csv2sheets/config"
)

const APP = "csv2sheets"
const VERSION = "v0.8.0"

// Options are the global command line options, shared by all commands.
type Options struct {
	Debug  bool
	Logger *zap.Logger
}

func (o *Options) log() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}

// Command is implemented by all csv2sheets subcommands.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// Parse matches the first argument against the command list and parses the
// remaining arguments with the matched command's flag set. Returns nil (and
// no error) when no command was given.
func Parse(cli []Command, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, nil
	}

	for _, cmd := range cli {
		if cmd.Name() == args[0] {
			flagset := cmd.FlagSet()
			if err := flagset.Parse(args[1:]); err != nil {
				return nil, err
			}

			return cmd, nil
		}
	}

	return nil, fmt.Errorf("invalid command '%s'", args[0])
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
}

// command holds the options common to the commands that resolve a run
// configuration.
type command struct {
	config      string
	envFile     string
	credentials string
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, "Path to the YAML configuration file")
	flagset.StringVar(&c.envFile, "env-file", c.envFile, "Path to a dotenv file loaded before reading the environment")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path to the Google credentials JSON file")

	return flagset
}

// spreadsheetID extracts the spreadsheet document ID from a Google Sheets URL.
func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(url)
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BdO3cuAEUGyDGGGHxcHcJ-Qa7lK28Vpq'")
	}

	return match[1], nil
}

// configuration resolves the run configuration, applying any command line
// overrides and falling back to the default credentials path.
func (c *command) configuration() (*config.Config, error) {
	cfg, err := config.Load(c.config, c.envFile)
	if err != nil {
		return nil, err
	}

	if c.credentials != "" {
		cfg.Credentials = c.credentials
	}

	if cfg.Credentials == "" {
		cfg.Credentials = DEFAULT_CREDENTIALS
	}

	return cfg, nil
}
