// Command wlt manages a personal wallet from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/wallet/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// answers the shell when invoked for completion, exits.
	cmd.Completion(flag.CommandLine).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
