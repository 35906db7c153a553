// Package childmap implements a Level node's child lookup table: a small
// domain of 8-bit child keys mapped to dense objects, using either a
// sorted-array probe or an MPHF depending on cardinality.
//
// This generalizes the node-size-class idea an ART-style Node4/16/48/256
// split uses, and the popcount-compressed sparse array a fixed 256-entry
// bitset uses: below a small cardinality threshold, a direct comparison
// beats any hashing scheme's fixed overhead; above it, a perfect hash wins.
// Unlike those, this never falls back to a direct 256-slot array: above the
// threshold every lookup goes through the MPHF. Keys are always uint8.
package childmap

import (
	"sort"

	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/mphf"
)

// DefaultThreshold is theta: at or below this many distinct keys, a
// sorted-array probe is used instead of an MPHF.
const DefaultThreshold = 1

// Map maps a small set of uint8 keys to values of type V.
//
// It is immutable once constructed; the full key set must be known up
// front. A Map never falls back to reporting absence — [Map.Lookup] assumes k is
// present, per invariant 7. Callers MUST guard with the owning Level's
// TopArray before calling Lookup.
type Map[V any] struct {
	small bool

	// small-cardinality representation: sorted parallel arrays, binary
	// search on keys.
	sortedKeys []uint8
	sortedVals []V

	// MPHF-backed representation.
	h    *mphf.Handle
	vals []V
}

// New builds a Map from keys and their corresponding values (values[i]
// corresponds to keys[i]). keys must be distinct. threshold is theta;
// pass [DefaultThreshold] unless a caller has a specific reason to tune it.
// The MPHF path (when used) is built with [mphf.DefaultGamma]; use
// [NewGamma] to override it.
func New[V any](keys []uint8, values []V, threshold int) *Map[V] {
	return NewGamma(keys, values, threshold, mphf.DefaultGamma)
}

// NewGamma is [New] with an explicit MPHF bucket/key ratio (gamma).
func NewGamma[V any](keys []uint8, values []V, threshold int, gamma float64) *Map[V] {
	debug.Assert(len(keys) == len(values), "childmap: %d keys but %d values", len(keys), len(values))

	if len(keys) <= threshold {
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}

		sort.Slice(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

		sortedKeys := make([]uint8, len(keys))
		sortedVals := make([]V, len(keys))

		for i, o := range order {
			sortedKeys[i] = keys[o]
			sortedVals[i] = values[o]
		}

		return &Map[V]{small: true, sortedKeys: sortedKeys, sortedVals: sortedVals}
	}

	h, err := mphf.BuildGamma(keys, gamma)
	debug.Assert(err == nil, "childmap: mphf construction failed: %v", err)

	vals := make([]V, len(keys))

	for i, k := range keys {
		vals[h.Lookup(k)] = values[i]
	}

	return &Map[V]{h: h, vals: vals}
}

// Lookup returns the value mapped to k.
//
// k must be present in the key set Map was built from (verify with the
// owning Level's TopArray first); calling with an absent key is a contract
// violation and may return any value from the underlying representation.
func (m *Map[V]) Lookup(k uint8) V {
	if m.small {
		i := sort.Search(len(m.sortedKeys), func(i int) bool { return m.sortedKeys[i] >= k })
		debug.Assert(i < len(m.sortedKeys) && m.sortedKeys[i] == k, "childmap: lookup of absent key %d", k)

		return m.sortedVals[i]
	}

	return m.vals[m.h.Lookup(k)]
}

// Len returns the number of distinct keys stored.
func (m *Map[V]) Len() int {
	if m.small {
		return len(m.sortedKeys)
	}

	return len(m.vals)
}
