// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden implements a simple and slow Maglev lookup table as a
// golden reference for the maglev package.
package golden

// Table is the reference implementation. It stores no preference
// permutations, every entry is recomputed on demand from (offset, skip),
// and the fill scans the slot slice directly instead of a fill set.
// Slow, but independent of the fast path.
type Table struct {
	Size  uint32
	Names []string
	Slots []int // node index per slot, -1 unassigned
}

// New builds and populates a reference table over names, in order.
func New(size uint32, names []string) *Table {
	t := &Table{
		Size:  size,
		Names: append([]string(nil), names...),
	}
	t.Populate()
	return t
}

// Add appends a node and repopulates.
func (t *Table) Add(name string) {
	t.Names = append(t.Names, name)
	t.Populate()
}

// Remove deletes a node, compacting left, and repopulates.
func (t *Table) Remove(name string) {
	for i, n := range t.Names {
		if n == name {
			t.Names = append(t.Names[:i], t.Names[i+1:]...)
			break
		}
	}
	t.Populate()
}

// Populate fills the table by round-robin over the nodes, each node
// claiming the first free slot in its preference order. One cursor per
// node, advanced past every examined entry.
func (t *Table) Populate() {
	t.Slots = make([]int, t.Size)
	for i := range t.Slots {
		t.Slots[i] = -1
	}
	if len(t.Names) == 0 {
		return
	}

	offsets := make([]uint64, len(t.Names))
	skips := make([]uint64, len(t.Names))
	for i, name := range t.Names {
		offsets[i] = uint64(Offset(name, t.Size))
		skips[i] = uint64(Skip(name, t.Size))
	}

	cursor := make([]uint64, len(t.Names))
	filled := 0

	for filled < len(t.Slots) {
		for i := range t.Names {
			for cursor[i] < uint64(t.Size) {
				p := (offsets[i] + cursor[i]*skips[i]) % uint64(t.Size)
				cursor[i]++
				if t.Slots[p] == -1 {
					t.Slots[p] = i
					filled++
					break
				}
			}
			if filled == len(t.Slots) {
				break
			}
		}
	}
}

// Counts returns per-node slot counts and the unassigned count.
func (t *Table) Counts() (counts []int, unassigned int) {
	counts = make([]int, len(t.Names))
	for _, idx := range t.Slots {
		if idx == -1 {
			unassigned++
		} else {
			counts[idx]++
		}
	}
	return counts, unassigned
}

// Offset is the starting slot of the preference permutation for name.
func Offset(name string, m uint32) uint32 {
	h := fnv1a(name)
	return (djb2(name) ^ h<<16 ^ h>>16) % m
}

// Skip is the permutation stride for name, in [1, m).
func Skip(name string, m uint32) uint32 {
	h := fnv1a(name)
	return (sdbm(name)^h<<8^h>>24)%(m-1) + 1
}

func djb2(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = h*33 + uint32(s[i])
	}
	return h
}

func sdbm(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = uint32(s[i]) + h*65600 - h
	}
	return h
}

func fnv1a(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 16777619
	}
	return h
}
