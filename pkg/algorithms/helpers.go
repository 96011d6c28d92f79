package algorithms

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedKeys returns the keys of m in ascending order. Algorithms iterate
// maps through it so runs with the same seed visit candidates identically.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
