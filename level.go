package stree

import (
	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/childmap"
	"github.com/flier/go-stree/pkg/toparray"
)

// ptrKind discriminates the three states a tagged pointer can hold.
type ptrKind uint8

const (
	ptrNull ptrKind = iota
	ptrLeaf
	ptrLevel
)

// Ptr is a tagged "Level-or-Leaf" pointer, modeled as a small sum type
// rather than a bit-tagged machine word: a managed runtime without raw
// pointer tagging pays one extra discriminant word instead, since the
// asymptotic behavior is unchanged.
// V is the value type of the pointee Level's ChildMap (so an L2Ptr's V is
// L3Ptr, and a plain leaf-only pointer's V is never instantiated beyond
// what the caller needs).
type Ptr[V any] struct {
	kind  ptrKind
	leaf  uint32
	level *Level[V]
}

// NullPtr returns the tagged pointer's null state.
func NullPtr[V any]() Ptr[V] { return Ptr[V]{kind: ptrNull} }

// LeafPtr returns a tagged pointer to the key at index idx in the global
// key array.
func LeafPtr[V any](idx uint32) Ptr[V] { return Ptr[V]{kind: ptrLeaf, leaf: idx} }

// LevelPtr returns a tagged pointer to an owned interior Level.
func LevelPtr[V any](l *Level[V]) Ptr[V] { return Ptr[V]{kind: ptrLevel, level: l} }

// IsNull reports whether p is the null state.
func (p Ptr[V]) IsNull() bool { return p.kind == ptrNull }

// IsLeaf reports whether p points directly at a key.
func (p Ptr[V]) IsLeaf() bool { return p.kind == ptrLeaf }

// IsLevel reports whether p points at an interior Level.
func (p Ptr[V]) IsLevel() bool { return p.kind == ptrLevel }

// Leaf returns the global key array index p points to. p must be a leaf.
func (p Ptr[V]) Leaf() uint32 {
	debug.Assert(p.kind == ptrLeaf, "stree: Leaf() called on non-leaf Ptr")

	return p.leaf
}

// Level returns the Level p points to. p must be an interior pointer.
func (p Ptr[V]) Level() *Level[V] {
	debug.Assert(p.kind == ptrLevel, "stree: Level() called on non-level Ptr")

	return p.level
}

// childUniverse is the size of an 8-bit child-key space: a TopArray over
// 256 child-key slots.
const childUniverse = 1 << l2Bits

// Level is an interior node of the three-level trie: a
// min/max bound (indices into the owning STree's GlobalKeyArray), a
// TopArray over its 256-slot 8-bit child-key space, and a ChildMap from
// present child keys to V.
//
// V is the L3Ptr type (= Ptr[uint32]) for an L2 Level, and plain uint32
// leaf indices for an L3 Level — an L3 child key always identifies exactly
// one key, so no further tagging is needed one level down.
type Level[V any] struct {
	min, max uint32
	top      *toparray.TopArray
	children *childmap.Map[V]
}

// newLevel builds a frozen Level from the set of present child keys, their
// values, min/max key-array indices, the ChildMap small-cardinality
// threshold, and the MPHF gamma parameter.
func newLevel[V any](keys []uint8, values []V, minIdx, maxIdx uint32, threshold int, gamma float64) *Level[V] {
	top := toparray.New(childUniverse)
	for _, k := range keys {
		top.Set(int(k))
	}

	return &Level[V]{
		min:      minIdx,
		max:      maxIdx,
		top:      top,
		children: childmap.NewGamma(keys, values, threshold, gamma),
	}
}

// MinIdx returns the global key array index of this subtree's smallest key.
func (l *Level[V]) MinIdx() uint32 { return l.min }

// MaxIdx returns the global key array index of this subtree's largest key.
func (l *Level[V]) MaxIdx() uint32 { return l.max }

// TryGet returns the value mapped to key if key's presence bit is set in
// l's TopArray — the only safe lookup on the query path.
func (l *Level[V]) TryGet(key uint8) (V, bool) {
	if !l.top.IsSet(int(key)) {
		var zero V

		return zero, false
	}

	return l.children.Lookup(key), true
}

// NextChild returns the smallest present child key strictly greater than
// key, if any.
func (l *Level[V]) NextChild(key uint8) (uint8, bool) {
	next := l.top.NextSet(int(key))
	if next.IsNone() {
		return 0, false
	}

	return uint8(next.Unwrap()), true
}

// PrevChild returns the largest present child key strictly less than key,
// if any.
func (l *Level[V]) PrevChild(key uint8) (uint8, bool) {
	prev := l.top.PrevSet(int(key))
	if prev.IsNone() {
		return 0, false
	}

	return uint8(prev.Unwrap()), true
}

// l3Ptr is the value type an L2 Level's ChildMap stores: each L2 child is
// itself tagged Leaf-or-Level, since a subtree hanging off an L2 key can
// degenerate to a single key without ever materializing an L3 Level.
type l3Ptr = Ptr[uint32]

// l2Level is a Level whose children are L3 pointers.
type l2Level = Level[l3Ptr]

// l2Ptr is the tagged pointer a RootTable cell holds: null, leaf, or an
// owned l2Level.
type l2Ptr = Ptr[l3Ptr]

// l3Level is a Level whose children are leaf indices directly (an L3 key
// fully determines a key, so no further tag is needed).
type l3Level = Level[uint32]
