// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fatih/color"

	"github.com/gaissmai/maglev"
)

// palette, ANSI color codes for the node names in 'show maglev-color'.
// The first sgrColors codes are classic SGR colors, the rest are
// 256-color indices. Dark colors and black are left out.
var palette = []int{
	// standard 16 colors
	31, 32, 33, 34, 35, 36, 37,
	91, 92, 93, 94, 95, 96, 97,

	// selected 256-color indices
	// red
	196, 197, 198, 199, 200, 201, 202, 203, 204, 205,
	// green
	46, 47, 48, 49, 50, 82, 83, 84, 85, 86,
	// yellow
	220, 221, 222, 223, 224, 225, 226, 227, 228, 229,
	// blue
	21, 26, 27, 32, 33, 38, 39, 44, 45, 75,
	// magenta/pink
	207, 213, 219, 225, 165, 171, 177, 183, 189, 195,
	// cyan
	51, 87, 123, 159, 14, 80, 116, 152, 188, 194,
	// purple
	129, 135, 141, 147, 153, 93, 99, 105, 111, 117,
	// orange
	166, 172, 178, 184, 190, 208, 214, 215, 216, 217,
	// gray
	244, 245, 246, 247, 248, 249, 250, 251, 252, 253,
	// specials
	11, 12, 13, 14, 15, 76, 77, 78, 79, 118, 119, 120, 121, 122,
}

// sgrColors, number of leading palette entries that are classic SGR codes.
const sgrColors = 14

// colorFor returns the sticky palette index for a node name, assigning
// one on first use. While unused palette entries remain, each node gets
// its own entry, picked at random; after exhaustion entries repeat.
// The palette lists codes 14 and 225 twice, so two nodes can share a
// color even before exhaustion.
func (s *shell) colorFor(name string) int {
	if idx, ok := s.colors[name]; ok {
		return idx
	}

	used := make(map[int]bool, len(s.colors))
	for _, idx := range s.colors {
		used[idx] = true
	}

	free := make([]int, 0, len(palette))
	for i := range palette {
		if !used[i] {
			free = append(free, i)
		}
	}

	var idx int
	if len(free) > 0 {
		idx = free[rand.IntN(len(free))]
	} else {
		idx = rand.IntN(len(palette))
	}

	s.colors[name] = idx
	return idx
}

// colorize wraps text in the escape sequence for the palette index.
func colorize(text string, idx int) string {
	code := palette[idx]
	if idx < sgrColors {
		return color.New(color.Attribute(code)).Sprint(text)
	}
	return color.New(38, 5, color.Attribute(code)).Sprint(text)
}

// showTableColored renders the same layout as 'show maglev' but with
// every node name in its assigned color, centered in its column.
func (s *shell) showTableColored() {
	t := s.table
	if t.Size() == 0 {
		fmt.Fprintln(s.out, "Maglev table not initialized")
		return
	}

	fmt.Fprintf(s.out, "Maglev lookup table (size: %d) - Colored:\n", t.Size())

	if t.NumNodes() == 0 {
		fmt.Fprintln(s.out, "  (empty - no nodes)")
		return
	}

	counts, unassigned := t.Counts()

	fmt.Fprintln(s.out, "Distribution summary:")
	for i, name := range t.Nodes() {
		fmt.Fprintf(s.out, "  %s: %d slots (%.2f%%)\n",
			colorize(name, s.colorFor(name)),
			counts[i], 100*float64(counts[i])/float64(t.Size()))
	}
	if unassigned > 0 {
		fmt.Fprintf(s.out, "  Unassigned: %d slots (%.2f%%)\n",
			unassigned, 100*float64(unassigned)/float64(t.Size()))
	}

	show := min(t.Size(), 100)
	width := s.nameWidth()

	perLine := 10
	if width > 10 {
		perLine = 8
	}

	fmt.Fprintf(s.out, "\nFirst %d slots:\n", show)

	for i := 0; i < show; i++ {
		if i%perLine == 0 {
			fmt.Fprintf(s.out, "\n%4d: ", i)
		}

		idx := t.SlotAt(i)
		if idx == maglev.Unassigned {
			fmt.Fprintf(s.out, "%*s ", width, "-")
			continue
		}

		name, _, _ := t.Node(idx)
		left := max(0, (width-len(name))/2)
		right := max(0, width-len(name)-left)
		fmt.Fprintf(s.out, "%s%s%s ",
			strings.Repeat(" ", left),
			colorize(name, s.colorFor(name)),
			strings.Repeat(" ", right))
	}
	fmt.Fprintln(s.out)

	if t.Size() > 100 {
		fmt.Fprintf(s.out, "... (showing first 100 out of %d total slots)\n", t.Size())
	}
}

// nameWidth, column width for the slot grid, longest name clamped
// to [8, 20].
func (s *shell) nameWidth() int {
	width := 1
	for _, name := range s.table.Nodes() {
		width = max(width, len(name))
	}
	return min(max(width, 8), 20)
}
