// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package maglev

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// showSlots caps the slot grid in the textual rendering.
const showSlots = 100

// MarshalText implements the encoding.TextMarshaler interface,
// just a wrapper for [Table.Fprint].
func (t *Table) MarshalText() ([]byte, error) {
	if !t.initialized {
		return nil, ErrNotInitialized
	}

	w := new(bytes.Buffer)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns the table rendering as string, just a wrapper for
// [Table.Fprint]. If the table is not initialized, String returns "".
func (t *Table) String() string {
	if !t.initialized {
		return ""
	}

	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes the distribution summary and the first 100 slots to w.
//
//	Maglev lookup table (size: 7):
//	Distribution summary:
//	  server1: 4 slots (57.14%)
//	  server2: 3 slots (42.86%)
//
//	First 7 slots:
//
//	   0:  server2  server1  server2  server1  server1  server1  server2
//
// Unassigned slots render as "-".
func (t *Table) Fprint(w io.Writer) error {
	if !t.initialized {
		return ErrNotInitialized
	}

	ew := &errWriter{w: w}

	fmt.Fprintf(ew, "Maglev lookup table (size: %d):\n", t.size)

	if len(t.nodes) == 0 {
		fmt.Fprintln(ew, "  (empty - no nodes)")
		return ew.err
	}

	counts, unassigned := t.Counts()

	fmt.Fprintln(ew, "Distribution summary:")
	for i, n := range t.nodes {
		fmt.Fprintf(ew, "  %s: %d slots (%.2f%%)\n",
			n.name, counts[i], 100*float64(counts[i])/float64(t.size))
	}
	if unassigned > 0 {
		fmt.Fprintf(ew, "  Unassigned: %d slots (%.2f%%)\n",
			unassigned, 100*float64(unassigned)/float64(t.size))
	}

	show := min(int(t.size), showSlots)
	width := t.nameWidth()

	perLine := 10
	if width > 10 {
		perLine = 8
	}

	fmt.Fprintf(ew, "\nFirst %d slots:\n", show)

	for i := 0; i < show; i++ {
		if i%perLine == 0 {
			fmt.Fprintf(ew, "\n%4d: ", i)
		}
		fmt.Fprintf(ew, "%*s ", width, t.slotName(i))
	}
	fmt.Fprintln(ew)

	if int(t.size) > showSlots {
		fmt.Fprintf(ew, "... (showing first %d out of %d total slots)\n", showSlots, t.size)
	}

	return ew.err
}

// slotName, the display name of the node owning slot i, "-" when
// unassigned.
func (t *Table) slotName(i int) string {
	idx := t.slots[i]
	if idx == Unassigned {
		return "-"
	}
	return t.nodes[idx].name
}

// nameWidth, display column width: the longest member name, clamped
// to [8, 20].
func (t *Table) nameWidth() int {
	width := 1
	for _, n := range t.nodes {
		width = max(width, len(n.name))
	}
	return min(max(width, 8), 20)
}

// errWriter, sticky error writer, spares the error check after
// every Fprintf.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}
	n, e.err = e.w.Write(p)
	return n, e.err
}
