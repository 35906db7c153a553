// Package swissmap implements a small open-addressing hash map used as a
// builder's scratch classification structure during bucket classification.
//
// It hashes keys with [github.com/dolthub/maphash], probes slots linearly,
// and grows by doubling once the load factor crosses a threshold. The
// SIMD-matched, 16-wide control-byte groups of a full Abseil-style swiss
// table are not reproduced here: this is a plain one-slot-per-bucket
// variant of the same idea.
package swissmap

import (
	"github.com/dolthub/maphash"
)

const (
	initialBuckets = 8
	maxLoadFactor  = 0.75
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotFull
	slotTombstone
)

// Map is a small open-addressing hash map keyed by any comparable type.
//
// The zero value is not usable; construct one with [New].
type Map[K comparable, V any] struct {
	hash     maphash.Hasher[K]
	keys     []K
	values   []V
	states   []slotState
	resident int
	dead     int
}

// New constructs an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{hash: maphash.NewHasher[K]()}
	m.reset(initialBuckets)

	return m
}

// Len returns the number of keys currently stored.
func (m *Map[K, V]) Len() int { return m.resident - m.dead }

// Get returns the value mapped to key, if any.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, ok := m.find(key)
	if !ok {
		var zero V

		return zero, false
	}

	return m.values[i], true
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.find(key)

	return ok
}

// Put inserts or updates the value mapped to key.
func (m *Map[K, V]) Put(key K, value V) {
	if float64(m.resident+1) > maxLoadFactor*float64(len(m.states)) {
		m.grow()
	}

	i := m.slotFor(key)
	if m.states[i] != slotFull {
		m.resident++
	}

	m.states[i] = slotFull
	m.keys[i] = key
	m.values[i] = value
}

// Keys returns the set of present keys, in an unspecified order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for i, s := range m.states {
		if s == slotFull {
			out = append(out, m.keys[i])
		}
	}

	return out
}

func (m *Map[K, V]) find(key K) (int, bool) {
	if len(m.states) == 0 {
		return 0, false
	}

	mask := uint64(len(m.states) - 1)
	i := m.hash.Hash(key) & mask

	for {
		switch m.states[i] {
		case slotEmpty:
			return 0, false
		case slotFull:
			if m.keys[i] == key {
				return int(i), true
			}
		case slotTombstone:
		}

		i = (i + 1) & mask
	}
}

// slotFor returns the slot key should occupy: its existing slot if present,
// or the first empty/tombstone slot on its probe sequence otherwise.
func (m *Map[K, V]) slotFor(key K) int {
	mask := uint64(len(m.states) - 1)
	i := m.hash.Hash(key) & mask

	var firstFree int = -1

	for {
		switch m.states[i] {
		case slotEmpty:
			if firstFree >= 0 {
				return firstFree
			}

			return int(i)
		case slotTombstone:
			if firstFree < 0 {
				firstFree = int(i)
			}
		case slotFull:
			if m.keys[i] == key {
				return int(i)
			}
		}

		i = (i + 1) & mask
	}
}

func (m *Map[K, V]) grow() {
	old := *m
	m.reset(len(old.states) * 2)

	for i, s := range old.states {
		if s == slotFull {
			m.Put(old.keys[i], old.values[i])
		}
	}
}

func (m *Map[K, V]) reset(numBuckets int) {
	m.keys = make([]K, numBuckets)
	m.values = make([]V, numBuckets)
	m.states = make([]slotState, numBuckets)
	m.resident, m.dead = 0, 0
}
