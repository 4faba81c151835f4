package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"calyx/config"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&dumpCmd{}, "")

	flag.Parse()
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Bad environment configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	// With no arguments the binary drops into the REPL; a bare file name
	// runs it as a script. Anything else is a regular subcommand.
	switch {
	case flag.NArg() == 0:
		setupLogging(cfg.Debug)
		os.Exit(int(runRepl(cfg.Prompt, cfg.Debug)))
	case !isRegisteredCommand(flag.Arg(0)):
		setupLogging(cfg.Debug)
		os.Exit(int(runFile(flag.Arg(0), cfg.Debug)))
	default:
		os.Exit(int(subcommands.Execute(ctx)))
	}
}

func isRegisteredCommand(name string) bool {
	switch name {
	case "repl", "run", "dump", "help", "flags", "commands":
		return true
	}
	return false
}

// setupLogging raises the log level so the compiler and VM trace output
// becomes visible.
func setupLogging(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}
