package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"calyx/chunk"
	"calyx/compiler"
	"calyx/config"
	"calyx/vm"
)

// runCmd executes a source file and exits.
type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute Calyx code from a source file" }
func (*runCmd) Usage() string {
	return `run [-debug] <file>:
  Compile and execute a Calyx source file.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "trace compilation and execution")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Bad environment configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	debug := r.debug || cfg.Debug
	setupLogging(debug)

	return runFile(args[0], debug)
}

// runFile compiles and executes one source file: the whole chunk is built
// by a single compile pass, sealed, then handed to a fresh VM.
func runFile(fileName string, debug bool) subcommands.ExitStatus {
	data, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	ch := chunk.New()
	if err := compiler.Compile(string(data), ch); err != nil {
		// the parse error itself is already on stderr
		return subcommands.ExitFailure
	}

	machine := vm.New()
	machine.SetDebug(debug)
	if err := machine.Run(ch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
