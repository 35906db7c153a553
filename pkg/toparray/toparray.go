//go:build go1.21

// Package toparray implements a hierarchical bit-summary array.
//
// A TopArray is a compact bitset over a fixed universe of U bits, built as
// stacked layers of 32-bit words: layer 0 holds the real bits, and each
// layer above it is an OR-summary of 32-word windows of the layer below, so
// that a zero word at layer N+1 means "none of these 32 words at layer N
// have any bit set." Successor/predecessor queries over the universe
// ("smallest/largest set bit relative to i") cost one word operation per
// layer instead of a linear scan, which is what makes the three-level trie
// in the parent package cheap to search.
//
// Bit order within a word is MSB-first: bit b of logical index i lives at
// bit (31 - i%32) of word i/32. That choice is deliberate, not cosmetic —
// it lets [math/bits.LeadingZeros32] read off the in-word answer to a
// "next set bit" query directly, and [math/bits.TrailingZeros32] do the
// same for "previous set bit."
package toparray

import (
	"math/bits"

	"github.com/flier/go-stree/internal/debug"
	"github.com/flier/go-stree/pkg/opt"
)

const wordBits = 32

// TopArray is a hierarchical bit-summary array over a universe of Len bits.
//
// The zero value is not usable; construct one with [New].
type TopArray struct {
	universe int
	layers   [][]uint32 // layers[0] is the real bitset; layers[len-1] is the topmost summary.
}

// New allocates a TopArray over a universe of u bits, all initially clear.
//
// u must be positive; builds with the debug tag panic if u <= 0.
func New(u int) *TopArray {
	debug.Assert(u > 0, "toparray: universe must be positive, got %d", u)

	t := &TopArray{universe: u}

	n := ceilDiv(u, wordBits)
	t.layers = append(t.layers, make([]uint32, n))

	for n >= wordBits {
		n = ceilDiv(n, wordBits)
		t.layers = append(t.layers, make([]uint32, n))
	}

	return t
}

// Len returns the size of the universe this TopArray was built over.
func (t *TopArray) Len() int { return t.universe }

// Set marks bit i as present.
//
// Setting an already-set bit is a no-op. Cascades a set bit up through every
// summary layer whose corresponding window was previously all-zero;
// already-nonzero windows are touched (idempotently) but do not need to
// cascade further, since their own summary bit is already set.
func (t *TopArray) Set(i int) {
	debug.Assert(i >= 0 && i < t.universe, "toparray: index %d out of range [0,%d)", i, t.universe)

	for _, layer := range t.layers {
		word, bit := i/wordBits, i%wordBits
		layer[word] |= 1 << uint(wordBits-1-bit)
		i = word
	}
}

// IsSet reports whether bit i is present.
func (t *TopArray) IsSet(i int) bool {
	debug.Assert(i >= 0 && i < t.universe, "toparray: index %d out of range [0,%d)", i, t.universe)

	word, bit := i/wordBits, i%wordBits

	return t.layers[0][word]&(1<<uint(wordBits-1-bit)) != 0
}

// NextSet returns the smallest set bit strictly greater than i, or None if
// there isn't one.
func (t *TopArray) NextSet(i int) opt.Option[int] {
	if i+1 >= t.universe {
		return opt.None[int]()
	}

	if pos, ok := t.nextFrom(0, i+1); ok {
		return opt.Some(pos)
	}

	return opt.None[int]()
}

// PrevSet returns the largest set bit strictly less than i, or None if there
// isn't one.
func (t *TopArray) PrevSet(i int) opt.Option[int] {
	if i <= 0 {
		return opt.None[int]()
	}

	if pos, ok := t.prevFrom(0, i-1); ok {
		return opt.Some(pos)
	}

	return opt.None[int]()
}

// nextFrom finds the smallest set bit index >= idx within the given layer
// (idx and the result are both in that layer's own bit units), ascending to
// higher (coarser) layers to skip empty words and descending back down once
// a nonempty word is located.
func (t *TopArray) nextFrom(layer, idx int) (int, bool) {
	words := t.layers[layer]
	word := idx / wordBits

	if word < len(words) {
		start := idx % wordBits
		if b, ok := nextSetInWord(words[word], start); ok {
			pos := word*wordBits + b
			if layer == 0 {
				return pos, true
			}

			return t.nextFrom(layer-1, pos*wordBits)
		}

		word++
	}

	if layer+1 >= len(t.layers) {
		// Topmost layer: no summary above it to consult, so the remaining
		// words must be scanned linearly. Bounded by the topmost layer's length (< 32 words).
		for w := word; w < len(words); w++ {
			if b, ok := nextSetInWord(words[w], 0); ok {
				pos := w*wordBits + b
				if layer == 0 {
					return pos, true
				}

				return t.nextFrom(layer-1, pos*wordBits)
			}
		}

		return 0, false
	}

	parentWord, ok := t.nextFrom(layer+1, word)
	if !ok {
		return 0, false
	}

	b, ok := nextSetInWord(words[parentWord], 0)
	debug.Assert(ok, "toparray: summary layer claimed a nonzero word that wasn't")

	pos := parentWord*wordBits + b
	if layer == 0 {
		return pos, true
	}

	return t.nextFrom(layer-1, pos*wordBits)
}

// prevFrom is the mirror image of nextFrom: it finds the largest set bit
// index <= idx within the given layer.
func (t *TopArray) prevFrom(layer, idx int) (int, bool) {
	if idx < 0 {
		return 0, false
	}

	words := t.layers[layer]
	word := idx / wordBits

	if word < len(words) {
		end := idx % wordBits
		if b, ok := prevSetInWord(words[word], end); ok {
			pos := word*wordBits + b
			if layer == 0 {
				return pos, true
			}

			return t.prevFrom(layer-1, pos*wordBits+wordBits-1)
		}
	}

	word--

	if word < 0 {
		return 0, false
	}

	if layer+1 >= len(t.layers) {
		for w := word; w >= 0; w-- {
			if b, ok := prevSetInWord(words[w], wordBits-1); ok {
				pos := w*wordBits + b
				if layer == 0 {
					return pos, true
				}

				return t.prevFrom(layer-1, pos*wordBits+wordBits-1)
			}
		}

		return 0, false
	}

	parentWord, ok := t.prevFrom(layer+1, word)
	if !ok {
		return 0, false
	}

	b, ok := prevSetInWord(words[parentWord], wordBits-1)
	debug.Assert(ok, "toparray: summary layer claimed a nonzero word that wasn't")

	pos := parentWord*wordBits + b
	if layer == 0 {
		return pos, true
	}

	return t.prevFrom(layer-1, pos*wordBits+wordBits-1)
}

// nextSetInWord returns the smallest logical bit position b >= start (b in
// [0,32)) set in word, using the MSB-first convention described in the
// package doc.
func nextSetInWord(word uint32, start int) (int, bool) {
	if start >= wordBits {
		return 0, false
	}

	masked := word & (^uint32(0) >> uint(start))
	if masked == 0 {
		return 0, false
	}

	return bits.LeadingZeros32(masked), true
}

// prevSetInWord returns the largest logical bit position b <= end (end in
// [0,32)) set in word.
func prevSetInWord(word uint32, end int) (int, bool) {
	if end < 0 {
		return 0, false
	}

	shift := wordBits - 1 - end
	masked := word & (^uint32(0) << uint(shift))
	if masked == 0 {
		return 0, false
	}

	return wordBits - 1 - bits.TrailingZeros32(masked), true
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
