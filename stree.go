package stree

import (
	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/mphf"
	"github.com/flier/go-stree/pkg/opt"
	"github.com/flier/go-stree/pkg/toparray"
)

// DefaultMaxRootSlots bounds the root table's slot count that [Build] will
// accept without an explicit [Options.MaxRootSlots] override. 2^28 slots at
// 16 bytes a cell (on 64-bit platforms) is 4 GiB, already a generous default
// for a single index.
const DefaultMaxRootSlots = 1 << 28

// Options configures [Build]. The zero value is not directly usable; call
// [DefaultOptions] to get a populated starting point.
type Options struct {
	// Width is the bit width of every key in the input. Required.
	Width Width

	// ChildMapThreshold is theta: at or below this many distinct child keys
	// a Level uses a sorted-array probe instead of an MPHF. Zero means use
	// childmap.DefaultThreshold.
	ChildMapThreshold int

	// Gamma is the MPHF bucket/key ratio. Zero means use
	// [github.com/flier/go-stree/pkg/mphf.DefaultGamma].
	Gamma float64

	// MaxRootSlots caps how large a root table Build will allocate for the
	// given Width. Zero means use [DefaultMaxRootSlots].
	MaxRootSlots uint64

	// CheckPreconditions enables an O(N) scan that verifies the input is
	// strictly ascending and duplicate-free, returning [Unsorted] or
	// [Duplicate] instead of trusting the caller to have sorted and
	// deduplicated it already.
	CheckPreconditions bool
}

// DefaultOptions returns an Options with CheckPreconditions enabled and
// every other field at its documented default, for the given key width.
func DefaultOptions(w Width) Options {
	return Options{Width: w, CheckPreconditions: true}
}

func (o Options) childMapThreshold() int {
	if o.ChildMapThreshold > 0 {
		return o.ChildMapThreshold
	}

	return defaultChildMapThreshold
}

func (o Options) gamma() float64 {
	if o.Gamma > 0 {
		return o.Gamma
	}

	return mphf.DefaultGamma
}

func (o Options) maxRootSlots() uint64 {
	if o.MaxRootSlots > 0 {
		return o.MaxRootSlots
	}

	return DefaultMaxRootSlots
}

const defaultChildMapThreshold = 1

// STree is an immutable predecessor/successor index over a sorted,
// duplicate-free sequence of fixed-width unsigned integer keys. Construct
// one with [Build]; an STree is safe for concurrent reads from multiple
// goroutines once built.
type STree struct {
	width     Width
	keys      []uint64
	rootTable []l2Ptr
	rootTop   *toparray.TopArray
}

// Build constructs an STree from keys, which must be sorted strictly
// ascending with no duplicates. Pass opts with CheckPreconditions set to
// have Build verify this instead of trusting the caller.
func Build(keys []uint64, opts Options) (*STree, error) {
	if !opts.Width.valid() {
		return nil, &BuildError{Kind: WidthTooLarge, msg: "unsupported width " + opts.Width.String()}
	}

	if len(keys) == 0 {
		return nil, errEmptyInput()
	}

	slots := opts.Width.rootSlots()
	if slots > opts.maxRootSlots() {
		return nil, errWidthTooLarge(opts.Width, slots, opts.maxRootSlots())
	}

	if opts.CheckPreconditions {
		for idx := 1; idx < len(keys); idx++ {
			switch {
			case keys[idx] == keys[idx-1]:
				return nil, errDuplicate(idx)
			case keys[idx] < keys[idx-1]:
				return nil, errUnsorted(idx)
			}
		}
	}

	b := newBuilder(opts.Width, keys, opts.childMapThreshold(), opts.gamma())
	rootTable, rootTop := b.build()

	return &STree{width: opts.Width, keys: keys, rootTable: rootTable, rootTop: rootTop}, nil
}

// Len returns the number of keys in the index.
func (s *STree) Len() int { return len(s.keys) }

// Width returns the key width the STree was built with.
func (s *STree) Width() Width { return s.width }

// Minimum returns the smallest stored key, or None if the index is empty.
func (s *STree) Minimum() opt.Option[uint64] {
	if len(s.keys) == 0 {
		return opt.None[uint64]()
	}

	return opt.Some(s.keys[0])
}

// Maximum returns the largest stored key, or None if the index is empty.
func (s *STree) Maximum() opt.Option[uint64] {
	if len(s.keys) == 0 {
		return opt.None[uint64]()
	}

	return opt.Some(s.keys[len(s.keys)-1])
}

// Contains reports whether q is a stored key.
func (s *STree) Contains(q uint64) bool {
	if len(s.keys) == 0 {
		return false
	}

	i, j, k := s.width.split(q)
	if i >= uint64(len(s.rootTable)) {
		return false
	}

	root := s.rootTable[i]
	if root.IsNull() {
		return false
	}

	if root.IsLeaf() {
		return s.keys[root.Leaf()] == q
	}

	l2 := root.Level()

	child, ok := l2.TryGet(j)
	if !ok {
		return false
	}

	if child.IsLeaf() {
		return s.keys[child.Leaf()] == q
	}

	l3 := child.Level()

	leaf, ok := l3.TryGet(k)
	if !ok {
		return false
	}

	return s.keys[leaf] == q
}

func (s *STree) keyAt(idx uint32) uint64 {
	debug.Assert(int(idx) < len(s.keys), "stree: key index %d out of range (len %d)", idx, len(s.keys))

	return s.keys[idx]
}

// l2MinKey/l2MaxKey resolve through a tagged L2Ptr to the bounding key of
// whatever it points at.
func (s *STree) l2MinKey(p l2Ptr) uint64 {
	if p.IsLeaf() {
		return s.keyAt(p.Leaf())
	}

	return s.keyAt(p.Level().MinIdx())
}

func (s *STree) l2MaxKey(p l2Ptr) uint64 {
	if p.IsLeaf() {
		return s.keyAt(p.Leaf())
	}

	return s.keyAt(p.Level().MaxIdx())
}

func (s *STree) l3MinKey(p l3Ptr) uint64 {
	if p.IsLeaf() {
		return s.keyAt(p.Leaf())
	}

	return s.keyAt(p.Level().MinIdx())
}

func (s *STree) l3MaxKey(p l3Ptr) uint64 {
	if p.IsLeaf() {
		return s.keyAt(p.Leaf())
	}

	return s.keyAt(p.Level().MaxIdx())
}
