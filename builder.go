package stree

import (
	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/swissmap"
	"github.com/flier/go-stree/pkg/toparray"
)

// l3scratch accumulates the L3 keys (and their GlobalKeyArray indices)
// seen for one (i, j) pair during Pass 1.
type l3scratch struct {
	ks   []uint8
	idxs []uint32
}

// l2scratch accumulates the L2 keys seen for one root index i during
// Pass 1, each keyed into an l3scratch by an ordinary hash map.
type l2scratch struct {
	order []uint8 // L2 keys in first-seen order; ascending, since input is sorted
	l3    *swissmap.Map[uint8, *l3scratch]
}

// builder runs a two-pass construction: Pass 1 classifies keys into
// scratch buckets with ordinary hash maps, Pass 2 freezes each bucket into
// a ChildMap-backed Level, collapsing single-key buckets straight to a leaf.
type builder struct {
	width     Width
	keys      []uint64
	threshold int
	gamma     float64
}

func newBuilder(w Width, keys []uint64, threshold int, gamma float64) *builder {
	return &builder{width: w, keys: keys, threshold: threshold, gamma: gamma}
}

// build runs both passes and returns the frozen root table and its
// summary TopArray.
func (b *builder) build() ([]l2Ptr, *toparray.TopArray) {
	rootTop := toparray.New(int(b.width.rootSlots()))
	rootTable := make([]l2Ptr, b.width.rootSlots())

	roots := swissmap.New[uint64, *l2scratch]()

	var order []uint64 // used root indices, in first-seen (ascending) order

	for idx, key := range b.keys {
		i, j, k := b.width.split(key)

		rs, ok := roots.Get(i)
		if !ok {
			rs = &l2scratch{l3: swissmap.New[uint8, *l3scratch]()}
			roots.Put(i, rs)
			rootTop.Set(int(i))
			order = append(order, i)
		}

		l3s, ok := rs.l3.Get(j)
		if !ok {
			l3s = &l3scratch{}
			rs.l3.Put(j, l3s)
			rs.order = append(rs.order, j)
		}

		l3s.ks = append(l3s.ks, k)
		l3s.idxs = append(l3s.idxs, uint32(idx))
	}

	debug.Log(nil, "classify", "%d keys into %d root buckets", len(b.keys), len(order))

	for _, i := range order {
		rs, _ := roots.Get(i)
		rootTable[i] = b.freezeRoot(rs)
	}

	debug.Log(nil, "freeze", "%d root buckets frozen", len(order))

	return rootTable, rootTop
}

// freezeRoot builds the frozen L2 Level (or leaf) for one used root index,
// from its Pass-1 scratch record.
func (b *builder) freezeRoot(rs *l2scratch) l2Ptr {
	l2Keys := rs.order
	l2Vals := make([]l3Ptr, len(l2Keys))

	var total int

	var minIdx, maxIdx uint32

	for pos, j := range l2Keys {
		l3s, _ := rs.l3.Get(j)

		ptr, lo, hi := b.freezeL3(l3s)
		l2Vals[pos] = ptr
		total += len(l3s.ks)

		if pos == 0 {
			minIdx = lo
		}

		maxIdx = hi
	}

	if total == 1 {
		return LeafPtr[l3Ptr](minIdx)
	}

	return LevelPtr(newLevel(l2Keys, l2Vals, minIdx, maxIdx, b.threshold, b.gamma))
}

// freezeL3 builds the frozen L3 Level (or leaf) for one (i, j) pair's
// scratch record, and reports the GlobalKeyArray index range it covers.
func (b *builder) freezeL3(l3s *l3scratch) (ptr l3Ptr, minIdx, maxIdx uint32) {
	minIdx, maxIdx = l3s.idxs[0], l3s.idxs[len(l3s.idxs)-1]

	if len(l3s.ks) == 1 {
		return LeafPtr[uint32](l3s.idxs[0]), minIdx, maxIdx
	}

	return LevelPtr(newLevel(l3s.ks, l3s.idxs, minIdx, maxIdx, b.threshold, b.gamma)), minIdx, maxIdx
}
