/*
Fa is a command-line front end for the automaton package: it loads a DFA or
NFA from a file, and either tests it against one or more words, transforms
it, or combines it with a second automaton.

Usage:

	fa [flags] SUBCOMMAND [args...]

Subcommands:

	accept -f FILE WORD...
		Load the automaton in FILE and report whether it accepts each
		WORD, a space-separated list of symbols.

	minimize -f FILE
	complete -f FILE
	complement -f FILE
		Load a DFA from FILE, apply the named transform, and print the
		result.

	to-dfa -f FILE
		Load an NFA from FILE, run subset construction, and print the
		resulting DFA.

	union -f FILE -g FILE
	intersect -f FILE -g FILE
	concat -f FILE -g FILE
	difference -f FILE -g FILE
		Load two DFAs and print the result of the named combinator.

	equivalent -f FILE -g FILE
		Load two DFAs and report whether they accept the same language.

	repl -f FILE
		Load a DFA and repeatedly read a word from stdin, printing whether
		it is accepted. Uses GNU-readline-style input unless --direct is
		given; there is no TTY check.

The flags are:

	-v, --version
		Give the current version of fa and then exit.

	-f, --file FILE
		The automaton definition to load. May be a .fa.yaml authoring-format
		file or a wire-format JSON file; the extension selects the parser.

	-g, --other FILE
		A second automaton definition, for the two-automaton subcommands.

	-n, --nfa
		Interpret --file as an NFA rather than a DFA. Only the accept
		subcommand reads this flag; --other is always loaded as a DFA.

	-d, --direct
		Force reading directly from stdin instead of GNU-readline-based
		routines, for the repl subcommand.

	-c, --config FILE
		Read CLI defaults from the given TOML config file.
*/
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvard/automata/automaton"
	"github.com/halvard/automata/internal/fadef"
	"github.com/halvard/automata/internal/input"
	"github.com/halvard/automata/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitRuntimeError
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagFile    = pflag.StringP("file", "f", "", "The automaton definition to load")
	flagOther   = pflag.StringP("other", "g", "", "A second automaton definition, for two-automaton subcommands")
	flagNFA     = pflag.BoolP("nfa", "n", false, "Interpret --file as an NFA (accept subcommand only)")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force direct stdin reading instead of readline, for repl")
	flagConfig  = pflag.StringP("config", "c", "", "Read CLI defaults from the given TOML config file")
	returnCode  = ExitSuccess
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("fa %s\n", version.Current)
		return
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		fail(ExitUsageError, "load config: %v", err)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fail(ExitUsageError, "missing subcommand; do -h for help")
		return
	}

	subcommand, rest := args[0], args[1:]

	switch subcommand {
	case "accept":
		runAccept(cfg, rest)
	case "minimize":
		runUnaryDFA(cfg, automaton.DFA.Minimize)
	case "complete":
		sinkName := cfg.SinkStateName
		runUnaryDFA(cfg, func(dfa automaton.DFA) automaton.DFA { return dfa.CompleteNamed(sinkName) })
	case "complement":
		runUnaryDFA(cfg, automaton.DFA.Complement)
	case "to-dfa":
		runToDFA(cfg)
	case "union":
		runBinaryDFA(cfg, automaton.Union)
	case "intersect":
		runBinaryDFA(cfg, automaton.Intersect)
	case "concat":
		runBinaryDFA(cfg, automaton.Concat)
	case "difference":
		runBinaryDFA(cfg, automaton.Difference)
	case "equivalent":
		runEquivalent(cfg)
	case "repl":
		runRepl(cfg)
	default:
		fail(ExitUsageError, "unknown subcommand %q; do -h for help", subcommand)
	}
}

func fail(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", fmt.Sprintf(format, args...))
	returnCode = code
}

func loadDFAFromFlag(path string) (automaton.DFA, error) {
	if path == "" {
		return automaton.DFA{}, fmt.Errorf("-f/--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return automaton.DFA{}, err
	}
	if strings.HasSuffix(filepath.Ext(path), "yaml") || strings.HasSuffix(path, ".fa.yaml") {
		return fadef.ParseDFA(data)
	}
	return automaton.LoadDFA(bytes.NewReader(data))
}

func loadNFAFromFlag(path string) (automaton.NFA, error) {
	if path == "" {
		return automaton.NFA{}, fmt.Errorf("-f/--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return automaton.NFA{}, err
	}
	if strings.HasSuffix(filepath.Ext(path), "yaml") || strings.HasSuffix(path, ".fa.yaml") {
		return fadef.ParseNFA(data)
	}
	return automaton.LoadNFA(bytes.NewReader(data))
}

func printDFA(cfg Config, dfa automaton.DFA) {
	if cfg.OutputFormat == "text" {
		fmt.Println(dfa.String())
		return
	}
	if err := dfa.Dump(os.Stdout); err != nil {
		fail(ExitRuntimeError, "dump result: %v", err)
	}
}

func runAccept(cfg Config, words []string) {
	if *flagNFA {
		nfa, err := loadNFAFromFlag(*flagFile)
		if err != nil {
			fail(ExitUsageError, "%v", err)
			return
		}
		for _, w := range words {
			fmt.Printf("%q: %v\n", w, nfa.Accept(splitWord(w)))
		}
		return
	}

	dfa, err := loadDFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	for _, w := range words {
		fmt.Printf("%q: %v\n", w, dfa.Accept(splitWord(w)))
	}
}

func runUnaryDFA(cfg Config, op func(automaton.DFA) automaton.DFA) {
	dfa, err := loadDFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	printDFA(cfg, op(dfa))
}

func runBinaryDFA(cfg Config, op func(a, b automaton.DFA) automaton.DFA) {
	a, err := loadDFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	b, err := loadDFAFromFlag(*flagOther)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	printDFA(cfg, op(a, b))
}

func runToDFA(cfg Config) {
	nfa, err := loadNFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	printDFA(cfg, nfa.ToDFA())
}

func runEquivalent(cfg Config) {
	a, err := loadDFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	b, err := loadDFAFromFlag(*flagOther)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}
	fmt.Println(automaton.Equivalent(a, b))
}

func runRepl(cfg Config) {
	dfa, err := loadDFAFromFlag(*flagFile)
	if err != nil {
		fail(ExitUsageError, "%v", err)
		return
	}

	type lineReader interface {
		ReadLine() (string, error)
		Close() error
	}

	var reader lineReader
	if *flagDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ir, err := input.NewInteractiveReader()
		if err != nil {
			fail(ExitRuntimeError, "init readline: %v", err)
			return
		}
		reader = ir
	}
	defer reader.Close()

	for {
		line, err := reader.ReadLine()
		if err != nil {
			return
		}
		fmt.Printf("%v\n", dfa.Accept(splitWord(line)))
	}
}

func splitWord(w string) []automaton.Symbol {
	if w == "" {
		return nil
	}
	return strings.Fields(w)
}
