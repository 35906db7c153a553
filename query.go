package stree

import (
	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/opt"
)

// Successor returns the smallest stored key >= q, or None if no such key
// exists.
func (s *STree) Successor(q uint64) opt.Option[uint64] {
	if len(s.keys) == 0 {
		return opt.None[uint64]()
	}

	if q > s.keys[len(s.keys)-1] {
		return opt.None[uint64]()
	}

	i, j, k := s.width.split(q)

	root := rootAt(s.rootTable, i)

	if root.IsNull() || (root.IsLevel() && s.l2MaxKey(root) < q) || (root.IsLeaf() && s.keyAt(root.Leaf()) < q) {
		next := s.rootTop.NextSet(int(i))
		if next.IsNone() {
			return opt.None[uint64]()
		}

		return opt.Some(s.l2MinKey(s.rootTable[next.Unwrap()]))
	}

	if root.IsLeaf() {
		return opt.Some(s.keyAt(root.Leaf()))
	}

	l2 := root.Level()

	c, ok := l2.TryGet(j)
	if !ok || (c.IsLevel() && s.l3MaxKey(c) < q) || (c.IsLeaf() && s.keyAt(c.Leaf()) < q) {
		jNext, ok := l2.NextChild(j)
		debug.Assert(ok, "stree: l2 max key >= q but no L2 child key > %d is set", j)

		child, _ := l2.TryGet(jNext)

		return opt.Some(s.l3MinKey(child))
	}

	if c.IsLeaf() {
		return opt.Some(s.keyAt(c.Leaf()))
	}

	l3 := c.Level()

	if l3.top.IsSet(int(k)) {
		leaf, _ := l3.TryGet(k)

		return opt.Some(s.keyAt(leaf))
	}

	kNext, ok := l3.NextChild(k)
	debug.Assert(ok, "stree: l3 max key >= q but no L3 child key > %d is set", k)

	leaf, _ := l3.TryGet(kNext)

	return opt.Some(s.keyAt(leaf))
}

// Predecessor returns the largest stored key <= q, or None if no such key
// exists. Symmetric with Successor.
func (s *STree) Predecessor(q uint64) opt.Option[uint64] {
	if len(s.keys) == 0 {
		return opt.None[uint64]()
	}

	if q < s.keys[0] {
		return opt.None[uint64]()
	}

	i, j, k := s.width.split(q)

	root := rootAt(s.rootTable, i)

	if root.IsNull() || (root.IsLevel() && s.l2MinKeySelf(root.Level()) > q) || (root.IsLeaf() && s.keyAt(root.Leaf()) > q) {
		prev := s.rootTop.PrevSet(int(i))
		if prev.IsNone() {
			return opt.None[uint64]()
		}

		return opt.Some(s.l2MaxKey(s.rootTable[prev.Unwrap()]))
	}

	if root.IsLeaf() {
		return opt.Some(s.keyAt(root.Leaf()))
	}

	l2 := root.Level()

	c, ok := l2.TryGet(j)
	if !ok || (c.IsLevel() && s.l3MinKeySelf(c.Level()) > q) || (c.IsLeaf() && s.keyAt(c.Leaf()) > q) {
		jPrev, ok := l2.PrevChild(j)
		debug.Assert(ok, "stree: l2 min key <= q but no L2 child key < %d is set", j)

		child, _ := l2.TryGet(jPrev)

		return opt.Some(s.l3MaxKey(child))
	}

	if c.IsLeaf() {
		return opt.Some(s.keyAt(c.Leaf()))
	}

	l3 := c.Level()

	if l3.top.IsSet(int(k)) {
		leaf, _ := l3.TryGet(k)

		return opt.Some(s.keyAt(leaf))
	}

	kPrev, ok := l3.PrevChild(k)
	debug.Assert(ok, "stree: l3 min key <= q but no L3 child key < %d is set", k)

	leaf, _ := l3.TryGet(kPrev)

	return opt.Some(s.keyAt(leaf))
}

func rootAt(table []l2Ptr, i uint64) l2Ptr {
	if i >= uint64(len(table)) {
		return NullPtr[l3Ptr]()
	}

	return table[i]
}

func (s *STree) l2MinKeySelf(l *l2Level) uint64 { return s.keyAt(l.MinIdx()) }
func (s *STree) l3MinKeySelf(l *l3Level) uint64 { return s.keyAt(l.MinIdx()) }
