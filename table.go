// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package maglev implements the consistent-hashing lookup table from
// Google's Maglev load balancer.
//
// A Table maps every slot of a fixed-size, prime-length array to one of
// the named backend nodes. The assignment is deterministic in the
// membership and its insertion order, nearly uniform across nodes, and
// adding or removing one node disturbs only a small fraction of slots.
// A router forwards a flow by hashing its identifier into [0, Size())
// and reading the node at that slot, one array lookup per packet.
//
// Each node derives a preference permutation of all slots from two
// independent hashes of its name (an offset and a stride). Populate
// round-robins over the nodes, each claiming the first still-free slot
// of its permutation, until the table is full. See the original paper:
// "Maglev: A Fast and Reliable Software Network Load Balancer",
// NSDI 2016.
//
// The Table is safe for concurrent readers but not for concurrent
// readers and writers; membership updates need external locking.
package maglev

import (
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DefaultMaxNodes caps the membership when Table.MaxNodes is zero.
	DefaultMaxNodes = 1000

	// MaxNameLen is the longest accepted node name, in bytes.
	MaxNameLen = 255

	// Unassigned is the sentinel node index for a slot no node owns.
	// Slots are only unassigned when the membership is empty or
	// entirely inactive.
	Unassigned = -1
)

// Table is a Maglev lookup table. The zero value is not initialized,
// use [New] or [Table.Init].
//
// A Table must not be copied by value, it owns its slot array and its
// node descriptors.
type Table struct {
	// used by -copylocks checker from `go vet`.
	_ noCopy

	// MaxNodes limits the membership, checked on Add.
	// Zero means DefaultMaxNodes.
	MaxNodes int

	size  uint32  // M, prime
	slots []int32 // node index per slot, or Unassigned
	nodes []*node // insertion order, index is the slot payload

	initialized bool
}

// New returns a table with size nextPrime(max(requested, 2)).
// Requested sizes < 1 are rejected with ErrInvalidSize.
func New(requested int) (*Table, error) {
	t := new(Table)
	if err := t.Init(requested); err != nil {
		return nil, err
	}
	return t, nil
}

// Init (re)initializes the table in place: any existing membership is
// torn down and a fresh all-unassigned slot array of size
// nextPrime(max(requested, 2)) is allocated.
func (t *Table) Init(requested int) error {
	if requested < 1 || uint64(requested) > math.MaxUint32 {
		return ErrInvalidSize
	}
	t.Cleanup()

	m := nextPrime(uint32(max(requested, 2)))

	t.size = m
	t.slots = make([]int32, m)
	for i := range t.slots {
		t.slots[i] = Unassigned
	}
	t.initialized = true

	return nil
}

// Cleanup releases the membership and the slot array and marks the
// table uninitialized. A later Init makes it usable again.
func (t *Table) Cleanup() {
	t.size = 0
	t.slots = nil
	t.nodes = nil
	t.initialized = false
}

// Add inserts a new node and repopulates the table. The append
// position becomes the node's index, the value stored in the slots.
func (t *Table) Add(name string) error {
	switch {
	case !t.initialized:
		return ErrNotInitialized
	case name == "" || len(name) > MaxNameLen:
		return ErrInvalidName
	}

	if _, ok := t.IndexOf(name); ok {
		return ErrDuplicateName
	}

	maxNodes := t.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	if len(t.nodes) >= maxNodes {
		return ErrCapacity
	}

	t.nodes = append(t.nodes, newNode(name, t.size))
	t.populate()

	return nil
}

// Remove deletes the node with this name and repopulates the table.
// Removing an absent name is a no-op success, membership updates stay
// idempotent under at-least-once delivery.
//
// Surviving nodes keep their relative order but nodes after the
// removed one shift left by one, node indices are ephemeral.
func (t *Table) Remove(name string) error {
	if !t.initialized {
		return ErrNotInitialized
	}

	i, ok := t.IndexOf(name)
	if !ok {
		return nil
	}

	t.nodes = slices.Delete(t.nodes, i, i+1)
	t.populate()

	return nil
}

// SetActive flags a node (in)active and repopulates the table.
// Inactive nodes keep their index but claim no slots; with no active
// node every slot is Unassigned.
func (t *Table) SetActive(name string, active bool) error {
	if !t.initialized {
		return ErrNotInitialized
	}

	i, ok := t.IndexOf(name)
	if !ok {
		return ErrUnknownName
	}

	if t.nodes[i].active == active {
		return nil
	}
	t.nodes[i].active = active
	t.populate()

	return nil
}

// populate overwrites every slot from scratch.
//
// Round-robin in node order: each active node advances its cursor
// through its preference permutation to the first still-free slot and
// claims it. The cursor consumes every examined entry, hit or miss.
// When two nodes prefer the same slot in the same round, the earlier
// node wins, node order is significant.
//
// Every permutation covers all slots, so with at least one active node
// the fill terminates with a full table, in at most size rounds.
func (t *Table) populate() {
	for i := range t.slots {
		t.slots[i] = Unassigned
	}

	anyActive := false
	for _, n := range t.nodes {
		n.resetCursor()
		anyActive = anyActive || n.active
	}
	if !anyActive {
		return
	}

	taken := bitset.New(uint(t.size))

	filled := uint32(0)
	for filled < t.size {
		for i, n := range t.nodes {
			if !n.active {
				continue
			}

			for n.cursor < len(n.pref) {
				p := n.pref[n.cursor]
				n.cursor++

				if !taken.Test(uint(p)) {
					taken.Set(uint(p))
					t.slots[p] = int32(i)
					filled++
					break
				}
			}

			if filled == t.size {
				break
			}
		}
	}
}

// Size returns the slot count M, 0 if the table is not initialized.
func (t *Table) Size() int {
	return int(t.size)
}

// NumNodes returns the current membership count.
func (t *Table) NumNodes() int {
	return len(t.nodes)
}

// IndexOf returns the index of the node with this name.
func (t *Table) IndexOf(name string) (i int, ok bool) {
	for i, n := range t.nodes {
		if n.name == name {
			return i, true
		}
	}
	return 0, false
}

// SlotAt returns the node index stored at slot i, or Unassigned if the
// slot is unowned or i is out of range.
func (t *Table) SlotAt(i int) int {
	if i < 0 || i >= len(t.slots) {
		return Unassigned
	}
	return int(t.slots[i])
}

// Node returns name and active flag of the node at index i.
func (t *Table) Node(i int) (name string, active bool, ok bool) {
	if i < 0 || i >= len(t.nodes) {
		return "", false, false
	}
	n := t.nodes[i]
	return n.name, n.active, true
}

// Counts returns the number of slots owned by each node, indexed like
// the membership, plus the number of unassigned slots. The sum over
// counts plus unassigned equals Size.
func (t *Table) Counts() (counts []int, unassigned int) {
	counts = make([]int, len(t.nodes))

	for _, idx := range t.slots {
		if idx == Unassigned {
			unassigned++
			continue
		}
		counts[idx]++
	}
	return counts, unassigned
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
