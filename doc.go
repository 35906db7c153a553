// Package stree implements an immutable, in-memory predecessor/successor
// index over a sorted, duplicate-free sequence of fixed-width unsigned
// integer keys.
//
// The structure is a three-level trie over a key's binary representation:
// the top W-16 bits select a root slot directly, the next 8 bits select an
// L2 child, and the low 8 bits select an L3 child (leaf). An interior node
// with more child keys than a small threshold uses a minimal perfect hash
// (see [github.com/flier/go-stree/pkg/mphf]) to map its present child keys
// to a dense slot, and one at or below it a sorted-array probe; either way
// the lookup is guarded by a hierarchical
// bit summary (see [github.com/flier/go-stree/pkg/toparray]) that locates
// the next or previous populated child in O(levels) word operations.
// Subtrees that degenerate to a single key collapse into a leaf pointer,
// skipping the allocation and indirection an interior node would otherwise
// cost.
//
// An STree is built once from a complete, sorted key set with [Build] and
// is read-only afterwards: Minimum, Maximum, Contains, Successor, and
// Predecessor are pure functions of the frozen structure and safe to call
// concurrently from multiple goroutines. There is no insert, delete, or
// persistence support; rebuilding from a new key set is the only way to
// change the contents of an index.
package stree
