// Package mphf builds minimal perfect hash functions over small, fixed key
// sets.
//
// This is an external collaborator kept out of the core index's scope: any
// standard construction accepting a gamma parameter suffices — a function
// that, given a known set of n distinct keys, maps them
// bijectively onto [0, n), with undefined behavior for any key outside the
// set. [Build] implements the standard "hash, displace, compress" (CHD)
// construction: keys are bucketed by a first hash, buckets are placed into
// the final slot table largest-first (to minimize retries), and each
// bucket is assigned the first displacement value that collides with no
// previously placed key.
package mphf

import (
	"fmt"
	"sort"

	"github.com/dolthub/maphash"
)

// DefaultGamma is the recommended bucket/key ratio: more buckets means
// fewer keys colliding into the same bucket during placement, at the cost
// of a larger (but still O(n)) displacement table.
const DefaultGamma = 2.0

const maxDisplacement = 1 << 20

// Handle is a frozen minimal perfect hash function over exactly the key set
// it was built from. Looking it up with a key outside that set is a
// contract violation: callers only ever call Lookup after confirming the
// key's presence via the parent TopArray.
type Handle struct {
	n            int
	numBuckets   uint32
	displacement []uint32
	bucketHash   maphash.Hasher[uint8]
	slotHash     maphash.Hasher[uint32]
}

// Build constructs a Handle over keys using [DefaultGamma].
//
// keys must be distinct; duplicate keys are a contract violation (the
// caller — the Builder's Pass 2 freeze step — already guarantees this by
// construction, since it only ever calls Build with the deduplicated key
// list recorded during Pass 1 classification).
func Build(keys []uint8) (*Handle, error) {
	return BuildGamma(keys, DefaultGamma)
}

// BuildGamma is [Build] with an explicit bucket/key ratio.
func BuildGamma(keys []uint8, gamma float64) (*Handle, error) {
	n := len(keys)
	if n == 0 {
		return &Handle{}, nil
	}

	numBuckets := uint32(float64(n) * gamma)
	if numBuckets == 0 {
		numBuckets = 1
	}

	h := &Handle{
		n:          n,
		numBuckets: numBuckets,
		bucketHash: maphash.NewHasher[uint8](),
		slotHash:   maphash.NewHasher[uint32](),
	}

	buckets := make([][]uint8, numBuckets)
	for _, k := range keys {
		b := h.bucketOf(k)
		buckets[b] = append(buckets[b], k)
	}

	order := make([]uint32, numBuckets)
	for i := range order {
		order[i] = uint32(i)
	}

	sort.Slice(order, func(i, j int) bool {
		return len(buckets[order[i]]) > len(buckets[order[j]])
	})

	occupied := make([]bool, n)
	displacement := make([]uint32, numBuckets)

	slots := make([]int, 0, 8)

	for _, b := range order {
		keys := buckets[b]
		if len(keys) == 0 {
			continue
		}

		placed := false

		for d := uint32(0); d < maxDisplacement; d++ {
			slots = slots[:0]
			collided := false

			for _, k := range keys {
				slot := h.slot(k, d)
				if occupied[slot] || containsInt(slots, slot) {
					collided = true

					break
				}

				slots = append(slots, slot)
			}

			if !collided {
				displacement[b] = d
				for _, slot := range slots {
					occupied[slot] = true
				}

				placed = true

				break
			}
		}

		if !placed {
			return nil, fmt.Errorf("mphf: failed to place bucket %d of %d keys after %d displacement attempts",
				b, len(keys), maxDisplacement)
		}
	}

	h.displacement = displacement

	return h, nil
}

// Lookup returns the dense index in [0, n) assigned to k.
//
// k must have been present in the key set passed to Build; behavior is
// undefined (but not unsafe — it returns some in-range index) otherwise.
func (h *Handle) Lookup(k uint8) int {
	b := h.bucketOf(k)
	d := h.displacement[b]

	return h.slot(k, d)
}

// Len returns n, the size of the key set this Handle was built over.
func (h *Handle) Len() int { return h.n }

func (h *Handle) bucketOf(k uint8) uint32 {
	return uint32(h.bucketHash.Hash(k) % uint64(h.numBuckets))
}

func (h *Handle) slot(k uint8, d uint32) int {
	packed := uint32(d)<<8 | uint32(k)

	return int(h.slotHash.Hash(packed) % uint64(h.n))
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}
