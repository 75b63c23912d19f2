// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runLines drives the shell with a command sequence and returns the
// accumulated output.
func runLines(t *testing.T, lines ...string) string {
	t.Helper()

	out := new(strings.Builder)
	sh := newShell(out)

	for _, line := range lines {
		if sh.process(line) {
			break
		}
	}
	return out.String()
}

func TestProcessInit(t *testing.T) {
	t.Parallel()

	out := runLines(t, "init 7")
	if !strings.Contains(out, "Maglev table initialized with size: 7") {
		t.Errorf("unexpected output %q", out)
	}

	// size rounds up to the next prime
	out = runLines(t, "init 100")
	if !strings.Contains(out, "Maglev table initialized with size: 101") {
		t.Errorf("unexpected output %q", out)
	}

	for _, bad := range []string{"init", "init x", "init 0", "init -3", "init 1 2"} {
		out = runLines(t, bad)
		if !strings.Contains(out, "Usage: init <table_size>") &&
			!strings.Contains(out, "Error: Invalid table size") {
			t.Errorf("%q: unexpected output %q", bad, out)
		}
	}
}

func TestProcessAddDel(t *testing.T) {
	t.Parallel()

	out := runLines(t, "add server1")
	if !strings.Contains(out, "Error: Maglev table not initialized") {
		t.Errorf("unexpected output %q", out)
	}

	out = runLines(t,
		"init 7",
		"add server1",
		"add server1",
		"del server1",
		"del server1",
	)

	for _, want := range []string{
		"Node 'server1' added successfully",
		"Error: Node 'server1' already exists",
		"Node 'server1' removed successfully",
		"Node 'server1' does not exist (ignored)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestProcessShowNodes(t *testing.T) {
	t.Parallel()

	out := runLines(t, "show nodes")
	if !strings.Contains(out, "Maglev table not initialized") {
		t.Errorf("unexpected output %q", out)
	}

	out = runLines(t, "init 7", "show nodes")
	if !strings.Contains(out, "Current nodes (0 total):") ||
		!strings.Contains(out, "  (no nodes)") {
		t.Errorf("unexpected output %q", out)
	}

	out = runLines(t, "init 7", "add a", "add b", "show nodes")
	if !strings.Contains(out, "Current nodes (2 total):") ||
		!strings.Contains(out, "  0: a") ||
		!strings.Contains(out, "  1: b") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProcessShowMaglev(t *testing.T) {
	t.Parallel()

	out := runLines(t, "init 7", "add A", "add B", "show maglev")
	if !strings.Contains(out, "Maglev lookup table (size: 7):") ||
		!strings.Contains(out, "  A: 4 slots (57.14%)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProcessQuitAndUnknown(t *testing.T) {
	t.Parallel()

	out := new(strings.Builder)
	sh := newShell(out)

	if sh.process("bogus") {
		t.Error("unknown command reported quit")
	}
	if !strings.Contains(out.String(), "Unknown command: bogus") {
		t.Errorf("unexpected output %q", out.String())
	}

	for _, cmd := range []string{"quit", "exit"} {
		out.Reset()
		if !sh.process(cmd) {
			t.Errorf("%q did not report quit", cmd)
		}
		if !strings.Contains(out.String(), "Goodbye!") {
			t.Errorf("unexpected output %q", out.String())
		}
	}

	if sh.process("") || sh.process("   ") {
		t.Error("blank input reported quit")
	}
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "batch.txt")
	script := strings.Join([]string{
		"# comment, skipped",
		"",
		"init 7",
		"add server1",
		"  show nodes  ",
	}, "\n")
	if err := os.WriteFile(file, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	out := new(strings.Builder)
	sh := newShell(out)

	quit, err := sh.runBatch(file)
	if err != nil {
		t.Fatal(err)
	}
	if quit {
		t.Error("batch without quit reported quit")
	}

	got := out.String()
	for _, want := range []string{
		"Executing commands from file: " + file,
		"> init 7",
		"> add server1",
		"> show nodes",
		"Node 'server1' added successfully",
		"Current nodes (1 total):",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "comment") {
		t.Error("comment line was executed")
	}
}

func TestRunBatchQuit(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "batch.txt")
	script := "init 7\nquit\nadd never\n"
	if err := os.WriteFile(file, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	out := new(strings.Builder)
	sh := newShell(out)

	quit, err := sh.runBatch(file)
	if err != nil {
		t.Fatal(err)
	}
	if !quit {
		t.Error("batch with quit did not report quit")
	}
	if strings.Contains(out.String(), "never") {
		t.Error("commands after quit were executed")
	}
}

func TestRunBatchMissingFile(t *testing.T) {
	t.Parallel()

	sh := newShell(new(strings.Builder))
	if _, err := sh.runBatch(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("missing batch file did not error")
	}
}
