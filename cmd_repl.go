package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"calyx/chunk"
	"calyx/compiler"
	"calyx/config"
	"calyx/scanner"
	"calyx/token"
	"calyx/vm"
)

// replCmd implements the interactive REPL command.
type replCmd struct {
	debug bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl [-debug]:
  Start an interactive Calyx session.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "trace compilation and execution")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Bad environment configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	debug := r.debug || cfg.Debug
	setupLogging(debug)

	return runRepl(cfg.Prompt, debug)
}

// runRepl owns one chunk and one VM for the whole session. Every input
// line is compiled as an extension of the same chunk and the VM resumes
// at its saved instruction pointer, so globals persist across lines while
// locals never outlive the line that declared them.
func runRepl(prompt string, debug bool) subcommands.ExitStatus {
	fmt.Println("Welcome to Calyx!")

	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %s\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	ch := chunk.New()
	machine := vm.New()
	machine.SetDebug(debug)

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %s\n", err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !isInputReady(source) {
			continue
		}
		buffer.Reset()

		mark := ch.Len()
		if err := compiler.Compile(source, ch); err != nil {
			// drop the partial bytecode of the failed line
			ch.Truncate(mark)
			continue
		}

		if err := machine.Run(ch); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// isInputReady checks whether the buffered input forms a complete unit of
// work or the REPL should keep reading. It checks for balanced braces, an
// unterminated string, and a trailing operator or keyword that expects
// more input.
//
// For example, after `{ let a = 1;` the REPL waits until the user closes
// the block with a `}`.
func isInputReady(source string) bool {
	s := scanner.New(source)
	var tokens []token.Token
	for {
		tok := s.ScanToken()
		tokens = append(tokens, tok)
		if tok.TokenType == token.EOF || tok.TokenType == token.ERROR {
			break
		}
	}

	last := tokens[len(tokens)-1]
	if last.TokenType == token.ERROR && last.Message == "Unterminated string" {
		// strings may span lines
		return false
	}

	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	lastTok := lastNonEOF(tokens)
	if lastTok == nil {
		return true
	}

	switch lastTok.TokenType {
	case token.EQUAL,
		token.PLUS,
		token.MINUS,
		token.STAR,
		token.SLASH,
		token.BANG,
		token.EQUAL_EQUAL,
		token.BANG_EQUAL,
		token.LESS,
		token.LESS_EQUAL,
		token.GREATER,
		token.GREATER_EQUAL,
		token.COMMA,
		token.LPA,
		token.LCUR,
		token.LET,
		token.PRINT:
		return false
	}

	return true
}

// lastNonEOF returns the last non-EOF token, or nil if all tokens are EOF.
func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}
