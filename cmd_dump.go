package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"calyx/chunk"
	"calyx/compiler"
)

// dumpCmd compiles a source file and emits the bytecode listing without
// executing it.
type dumpCmd struct {
	output string
	save   bool
}

func (*dumpCmd) Name() string { return "dump" }
func (*dumpCmd) Synopsis() string {
	return "Compile a source file and print its bytecode listing"
}
func (*dumpCmd) Usage() string {
	return `dump [-save] [-o <file>] <file>:
  Compile a Calyx source file and print the disassembled bytecode.
`
}

func (d *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.output, "o", "", "write the listing to this file instead of stdout")
	f.BoolVar(&d.save, "save", false, "write the listing next to the source as a .dis file")
}

func (d *dumpCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	fileName := args[0]

	data, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	ch := chunk.New()
	if err := compiler.Compile(string(data), ch); err != nil {
		return subcommands.ExitFailure
	}
	listing := ch.Disassemble()

	target := d.output
	if target == "" && d.save {
		target = strings.TrimSuffix(fileName, ".clx") + ".dis"
	}
	if target == "" {
		fmt.Println(listing)
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(target, []byte(listing+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to write listing: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
