package commands

import (
	"context"
	"flag"
	"fmt"
)

// NewHelp returns an initialized Help command for the main() command list.
func NewHelp(cli []Command) *Help {
	return &Help{
		cli:     cli,
		flagset: flag.NewFlagSet("help", flag.ExitOnError),
	}
}

// Help is a CLI command implementation that displays the usage information
// for the application and its commands.
type Help struct {
	cli     []Command
	flagset *flag.FlagSet
}

func (c *Help) Name() string {
	return "help"
}

func (c *Help) Description() string {
	return "Displays the help information"
}

func (c *Help) Usage() string {
	return "[command]"
}

func (c *Help) FlagSet() *flag.FlagSet {
	return c.flagset
}

func (c *Help) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s help [command]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the help information for a command")
	fmt.Println()
}

func (c *Help) Execute(ctx context.Context, options *Options) error {
	if args := c.flagset.Args(); len(args) > 0 {
		for _, cmd := range c.cli {
			if cmd.Name() == args[0] {
				cmd.Help()
				return nil
			}
		}

		return fmt.Errorf("invalid command '%s'", args[0])
	}

	c.usage()

	return nil
}

func (c *Help) usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, cmd := range c.cli {
		fmt.Printf("    %-13s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Printf("    %-13s %s\n", c.Name(), c.Description())
	fmt.Println()
	fmt.Printf("  Use '%s help <command>' for command specific information.\n", APP)
	fmt.Println()
}
