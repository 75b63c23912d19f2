// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package golden

import (
	"fmt"
	"math/rand/v2"
)

// RandomNames returns n distinct pseudo-random node names.
func RandomNames(prng *rand.Rand, n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)

	for len(names) < n {
		name := RandomName(prng)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// RandomName returns a pseudo-random node name, e.g. "srv-fk3q-07".
func RandomName(prng *rand.Rand) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, 4)
	for i := range b {
		b[i] = alphabet[prng.IntN(len(alphabet))]
	}
	return fmt.Sprintf("srv-%s-%02d", b, prng.IntN(100))
}
