// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gaissmai/maglev"
)

// shell translates user commands into maglev.Table calls and renders
// the results. The table itself holds no display state, the per-node
// colors live here.
type shell struct {
	table  *maglev.Table
	out    io.Writer
	colors map[string]int // node name -> palette index
}

func newShell(out io.Writer) *shell {
	return &shell{
		table:  new(maglev.Table),
		out:    out,
		colors: map[string]int{},
	}
}

// process executes one command line, reporting true for quit/exit.
func (s *shell) process(line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "init":
		s.cmdInit(args)
	case "add":
		s.cmdAdd(args)
	case "del":
		s.cmdDel(args)
	case "show":
		s.cmdShow(args)
	case "help":
		s.cmdHelp()
	case "quit", "exit":
		fmt.Fprintln(s.out, "Goodbye!")
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s\n", args[0])
		fmt.Fprintln(s.out, "Type 'help' for available commands.")
	}
	return false
}

// runBatch executes commands from a file, one per line. Blank lines
// and '#' comment lines are skipped. A quit/exit line stops the file
// and reports quit to the caller.
func (s *shell) runBatch(filename string) (quit bool, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return false, err
	}
	defer file.Close()

	fmt.Fprintf(s.out, "Executing commands from file: %s\n", filename)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fmt.Fprintf(s.out, "> %s\n", line)

		if s.process(line) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func (s *shell) cmdInit(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: init <table_size>")
		return
	}

	size, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || size <= 0 || size > int64(^uint32(0)) {
		fmt.Fprintf(s.out, "Error: Invalid table size '%s'\n", args[1])
		return
	}

	if err := s.table.Init(int(size)); err != nil {
		fmt.Fprintln(s.out, "Error: Failed to initialize Maglev table")
		return
	}

	clear(s.colors)
	fmt.Fprintf(s.out, "Maglev table initialized with size: %d\n", s.table.Size())
}

func (s *shell) cmdAdd(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: add <node_name>")
		return
	}
	name := args[1]

	switch err := s.table.Add(name); {
	case err == nil:
		fmt.Fprintf(s.out, "Node '%s' added successfully\n", name)
	case errors.Is(err, maglev.ErrNotInitialized):
		fmt.Fprintln(s.out, "Error: Maglev table not initialized")
	case errors.Is(err, maglev.ErrInvalidName):
		fmt.Fprintln(s.out, "Error: Invalid node name")
	case errors.Is(err, maglev.ErrDuplicateName):
		fmt.Fprintf(s.out, "Error: Node '%s' already exists\n", name)
	case errors.Is(err, maglev.ErrCapacity):
		fmt.Fprintln(s.out, "Error: Maximum number of nodes reached")
	default:
		fmt.Fprintf(s.out, "Error: Failed to add node '%s'\n", name)
	}
}

func (s *shell) cmdDel(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: del <node_name>")
		return
	}
	name := args[1]

	_, exists := s.table.IndexOf(name)

	if err := s.table.Remove(name); err != nil {
		fmt.Fprintln(s.out, "Error: Maglev table not initialized")
		return
	}

	if !exists {
		fmt.Fprintf(s.out, "Node '%s' does not exist (ignored)\n", name)
		return
	}

	delete(s.colors, name)
	fmt.Fprintf(s.out, "Node '%s' removed successfully\n", name)
}

func (s *shell) cmdShow(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: show <nodes|maglev|maglev-color>")
		return
	}

	switch args[1] {
	case "nodes":
		s.showNodes()
	case "maglev":
		s.showTable()
	case "maglev-color":
		s.showTableColored()
	default:
		fmt.Fprintln(s.out, "Usage: show <nodes|maglev|maglev-color>")
	}
}

func (s *shell) showNodes() {
	if s.table.Size() == 0 {
		fmt.Fprintln(s.out, "Maglev table not initialized")
		return
	}

	fmt.Fprintf(s.out, "Current nodes (%d total):\n", s.table.NumNodes())
	if s.table.NumNodes() == 0 {
		fmt.Fprintln(s.out, "  (no nodes)")
		return
	}

	for i, name := range s.table.Nodes() {
		fmt.Fprintf(s.out, "  %d: %s\n", i, name)
	}
}

func (s *shell) showTable() {
	if err := s.table.Fprint(s.out); err != nil {
		fmt.Fprintln(s.out, "Maglev table not initialized")
	}
}

func (s *shell) cmdHelp() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Google Maglev Simulator Commands:")
	fmt.Fprintln(s.out, "  init <size>          - Initialize lookup table with given size")
	fmt.Fprintln(s.out, "  add <name>           - Add a new node (error if exists)")
	fmt.Fprintln(s.out, "  del <name>           - Delete a node (ignore if not exists)")
	fmt.Fprintln(s.out, "  show nodes           - Show current nodes")
	fmt.Fprintln(s.out, "  show maglev          - Show complete maglev lookup table")
	fmt.Fprintln(s.out, "  show maglev-color    - Show maglev lookup table with colored nodes")
	fmt.Fprintln(s.out, "  help                 - Show this help message")
	fmt.Fprintln(s.out, "  quit/exit            - Exit the simulator")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Example:")
	fmt.Fprintln(s.out, "  > init 37")
	fmt.Fprintln(s.out, "  > add server1")
	fmt.Fprintln(s.out, "  > add server2")
	fmt.Fprintln(s.out, "  > show nodes")
	fmt.Fprintln(s.out, "  > show maglev")
	fmt.Fprintln(s.out, "  > show maglev-color")
	fmt.Fprintln(s.out, "  > del server1")
	fmt.Fprintln(s.out)
}
