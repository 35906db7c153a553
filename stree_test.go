package stree_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/flier/go-stree/pkg/opt"

	. "github.com/flier/go-stree"
)

func buildOrFail(t *testing.T, keys []uint64, w Width) *STree {
	t.Helper()

	tree, err := Build(keys, DefaultOptions(w))
	require.NoError(t, err)

	return tree
}

// TestSeedScenario1 exercises a scattered W=40 key set where every gap
// between consecutive keys must resolve to the next key on successor, and
// the boundary queries at both ends behave correctly.
func TestSeedScenario1(t *testing.T) {
	keys := []uint64{0, 1, 3, 23, 123, 232, 500, 20000, 30000, 50000, 100000, 200000, 200005, 1065983}
	tree := buildOrFail(t, keys, Width40)

	Convey("Scenario 1: scattered W=40 keys", t, func() {
		Convey("successor(q) for q in (keys[i], keys[i+1]] equals keys[i+1]", func() {
			for i := 0; i < len(keys)-1; i++ {
				for q := keys[i] + 1; q <= keys[i+1]; q++ {
					got := tree.Successor(q)
					So(got.IsSome(), ShouldBeTrue)
					So(got.Unwrap(), ShouldEqual, keys[i+1])
				}
			}
		})

		Convey("predecessor(1065983) = 1065983", func() {
			So(tree.Predecessor(1065983).Unwrap(), ShouldEqual, uint64(1065983))
		})

		Convey("predecessor(0) = 0", func() {
			So(tree.Predecessor(0).Unwrap(), ShouldEqual, uint64(0))
		})

		Convey("successor(1065984) = none", func() {
			So(tree.Successor(1065984).IsNone(), ShouldBeTrue)
		})
	})
}

// TestSeedScenario3 exercises 1024 keys densely packed at root index 0:
// one L2 Level with four full 256-key L3 Levels, none of them collapsed.
func TestSeedScenario3(t *testing.T) {
	keys := make([]uint64, 1024)
	for i := range keys {
		keys[i] = uint64(i)
	}

	tree := buildOrFail(t, keys, Width40)

	Convey("Scenario 3: densely packed keys at root index 0", t, func() {
		Convey("successor(i) = i for every stored i", func() {
			for i := range keys {
				So(tree.Successor(uint64(i)).Unwrap(), ShouldEqual, uint64(i))
			}
		})

		Convey("successor(1024) = none", func() {
			So(tree.Successor(1024).IsNone(), ShouldBeTrue)
		})

		Convey("contains(i) = i < 1024", func() {
			for i := 0; i < 2000; i++ {
				So(tree.Contains(uint64(i)), ShouldEqual, i < 1024)
			}
		})
	})
}

// TestSeedScenario6 exercises empty and malformed input, which must be
// rejected as build-time errors.
func TestSeedScenario6(t *testing.T) {
	Convey("Scenario 6: malformed input is a build error", t, func() {
		Convey("empty key set", func() {
			_, err := Build(nil, DefaultOptions(Width40))
			So(err, ShouldNotBeNil)

			be, ok := AsBuildError(err)
			So(ok, ShouldBeTrue)
			So(be.Kind, ShouldEqual, EmptyInput)
		})

		Convey("duplicate keys, with precondition checking on", func() {
			_, err := Build([]uint64{1, 2, 2, 3}, DefaultOptions(Width40))
			So(err, ShouldNotBeNil)

			var be *BuildError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.Kind, ShouldEqual, Duplicate)
		})

		Convey("unsorted keys, with precondition checking on", func() {
			_, err := Build([]uint64{1, 3, 2}, DefaultOptions(Width40))
			So(err, ShouldNotBeNil)

			var be *BuildError
			So(errors.As(err, &be), ShouldBeTrue)
			So(be.Kind, ShouldEqual, Unsorted)
		})
	})
}

func TestSingleElementTree(t *testing.T) {
	tree := buildOrFail(t, []uint64{42}, Width40)

	Convey("single-element STree", t, func() {
		So(tree.Len(), ShouldEqual, 1)
		So(tree.Minimum().Unwrap(), ShouldEqual, uint64(42))
		So(tree.Maximum().Unwrap(), ShouldEqual, uint64(42))

		So(tree.Contains(42), ShouldBeTrue)
		So(tree.Contains(41), ShouldBeFalse)

		So(tree.Successor(42).Unwrap(), ShouldEqual, uint64(42))
		So(tree.Successor(43).IsNone(), ShouldBeTrue)
		So(tree.Predecessor(42).Unwrap(), ShouldEqual, uint64(42))
		So(tree.Predecessor(41).IsNone(), ShouldBeTrue)
	})
}

func TestEveryStoredKeyIsItsOwnSuccessorAndPredecessor(t *testing.T) {
	keys := []uint64{0, 1, 3, 23, 123, 232, 500, 20000, 30000, 50000, 100000, 200000, 200005, 1065983}
	tree := buildOrFail(t, keys, Width40)

	for _, k := range keys {
		require.True(t, tree.Contains(k))
		require.Equal(t, opt.Some(k), tree.Successor(k))
		require.Equal(t, opt.Some(k), tree.Predecessor(k))
	}
}

func TestMinimumMaximum(t *testing.T) {
	keys := []uint64{5, 10, 15, 20}
	tree := buildOrFail(t, keys, Width40)

	require.Equal(t, opt.Some(uint64(5)), tree.Minimum())
	require.Equal(t, opt.Some(uint64(20)), tree.Maximum())
}

func TestWidthTooLargeRejectsWidth64WithoutOverride(t *testing.T) {
	_, err := Build([]uint64{1, 2, 3}, DefaultOptions(Width64))

	var be *BuildError
	require.True(t, errors.As(err, &be))
	require.Equal(t, WidthTooLarge, be.Kind)
}

func TestWidthTooLargeComparesAgainstConfiguredMax(t *testing.T) {
	opts := DefaultOptions(Width40)
	opts.MaxRootSlots = 1 << 16 // smaller than Width40's 2^24 root slots

	_, err := Build([]uint64{1, 2, 3}, opts)

	var be *BuildError
	require.True(t, errors.As(err, &be))
	require.Equal(t, WidthTooLarge, be.Kind)
}
