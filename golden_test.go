// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package maglev

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/gaissmai/maglev/internal/golden"
)

// the fast table is cross-checked against the slow reference in
// internal/golden over randomized mutation sequences.

func TestGoldenPopulate(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(42, 42))

	for _, size := range []int{2, 7, 101, 211} {
		for _, n := range []int{1, 3, 7, 15} {
			names := golden.RandomNames(prng, n)

			tbl, _ := New(size)
			for _, name := range names {
				if err := tbl.Add(name); err != nil {
					t.Fatal(err)
				}
			}

			gold := golden.New(uint32(tbl.Size()), names)

			if !slices.Equal(slotsOf(t, tbl), gold.Slots) {
				t.Fatalf("size=%d n=%d: fast and golden tables differ", size, n)
			}
		}
	}
}

func TestGoldenMutationSequence(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(7, 7))

	const size = 101
	pool := golden.RandomNames(prng, 30)

	tbl, _ := New(size)
	gold := golden.New(uint32(tbl.Size()), nil)

	member := map[string]bool{}

	for step := 0; step < 200; step++ {
		name := pool[prng.IntN(len(pool))]

		if member[name] && prng.IntN(2) == 0 {
			if err := tbl.Remove(name); err != nil {
				t.Fatal(err)
			}
			gold.Remove(name)
			delete(member, name)
		} else if !member[name] {
			if err := tbl.Add(name); err != nil {
				t.Fatal(err)
			}
			gold.Add(name)
			member[name] = true
		}

		if !slices.Equal(slotsOf(t, tbl), gold.Slots) {
			t.Fatalf("step %d: fast and golden tables differ", step)
		}

		counts, _ := tbl.Counts()
		goldCounts, _ := gold.Counts()
		if !slices.Equal(counts, goldCounts) {
			t.Fatalf("step %d: counts differ: %v vs %v", step, counts, goldCounts)
		}
	}
}
