// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package maglev

import "iter"

// All returns an iterator over (slot, node index) in slot order.
// The node index is Unassigned for unowned slots.
func (t *Table) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i, idx := range t.slots {
			if !yield(i, int(idx)) {
				return
			}
		}
	}
}

// Nodes returns an iterator over (node index, name) in membership order.
func (t *Table) Nodes() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, n := range t.nodes {
			if !yield(i, n.name) {
				return
			}
		}
	}
}
