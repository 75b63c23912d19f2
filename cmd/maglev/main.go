// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command maglev is an interactive simulator for the Maglev
// consistent-hashing lookup table.
//
//	Usage: maglev [OPTIONS] [COMMAND]
//
//	Options:
//	  -C <file>    Execute commands from file, then continue interactively
//	               if the file doesn't end with 'quit'
//	  -h, --help   Show this help message
//
// Without arguments the simulator enters a readline-driven shell with
// history in $HOME/.maglev_history and tab completion. A positional
// COMMAND executes once and exits.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	fmt.Println("Google Maglev Simulator")

	var commandFile string

	for i := 1; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "-C":
			if i+1 >= len(args) {
				fmt.Println("Error: -C option requires a filename")
				usage(args[0])
				return 1
			}
			commandFile = args[i+1]
			i++

		case arg == "-h" || arg == "--help":
			usage(args[0])
			return 0

		default:
			// single command mode, the rest of argv is one command
			command := strings.Join(args[i:], " ")

			fmt.Println("Type 'help' for available commands, 'quit' to exit.")
			fmt.Printf("\nExecuting: %s\n", command)

			sh := newShell(os.Stdout)
			sh.process(command)
			return 0
		}
	}

	fmt.Println("Type 'help' for available commands, 'quit' to exit.")
	fmt.Println("Use UP/DOWN arrows to navigate command history.")
	fmt.Println()

	sh := newShell(os.Stdout)

	if commandFile != "" {
		quit, err := sh.runBatch(commandFile)
		if err != nil {
			fmt.Printf("Error: Cannot open file '%s'\n", commandFile)
			return 1
		}
		if quit {
			return 0
		}
		fmt.Println("\n--- Entering interactive mode ---")
	}

	return repl(sh)
}

// repl runs the interactive shell until quit/exit or EOF.
func repl(sh *shell) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile(),
		HistoryLimit:    100,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			// Ctrl-D
			fmt.Println("\nGoodbye!")
			return 0
		case err != nil:
			fmt.Printf("Error: %v\n", err)
			return 1
		}

		if sh.process(line) {
			return 0
		}
	}
}

// historyFile, $HOME/.maglev_history, empty disables persistent history.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maglev_history")
}

func completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("init"),
		readline.PcItem("add"),
		readline.PcItem("del"),
		readline.PcItem("show",
			readline.PcItem("nodes"),
			readline.PcItem("maglev"),
			readline.PcItem("maglev-color"),
		),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

func usage(name string) {
	fmt.Printf("Usage: %s [OPTIONS] [COMMAND]\n", name)
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -C <file>    Execute commands from file, then continue interactively")
	fmt.Println("               if the file doesn't end with 'quit'")
	fmt.Println("  -h, --help   Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s                                  # Interactive mode\n", name)
	fmt.Printf("  %s help                             # Execute single command\n", name)
	fmt.Printf("  %s -C scripts/batch_commands.txt    # Execute commands from file\n", name)
	fmt.Println()
	fmt.Println("File format:")
	fmt.Println("  # This is a comment")
	fmt.Println("  init 37")
	fmt.Println("  add server1")
	fmt.Println("  show nodes")
	fmt.Println("  # If no 'quit' at end, continues to interactive mode")
}
