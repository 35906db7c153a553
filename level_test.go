package stree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flier/go-stree/pkg/childmap"
	"github.com/flier/go-stree/pkg/mphf"
)

func TestPtrStates(t *testing.T) {
	n := NullPtr[uint32]()
	require.True(t, n.IsNull())
	require.False(t, n.IsLeaf())
	require.False(t, n.IsLevel())

	lf := LeafPtr[uint32](7)
	require.True(t, lf.IsLeaf())
	require.Equal(t, uint32(7), lf.Leaf())

	lvl := newLevel([]uint8{1, 2, 3}, []uint32{10, 20, 30}, 10, 30, childmap.DefaultThreshold, mphf.DefaultGamma)
	lp := LevelPtr[uint32](lvl)
	require.True(t, lp.IsLevel())
	require.Same(t, lvl, lp.Level())
}

func TestLevelTryGet(t *testing.T) {
	lvl := newLevel([]uint8{5, 9, 200}, []uint32{100, 200, 300}, 100, 300, childmap.DefaultThreshold, mphf.DefaultGamma)

	v, ok := lvl.TryGet(9)
	require.True(t, ok)
	require.Equal(t, uint32(200), v)

	_, ok = lvl.TryGet(10)
	require.False(t, ok)
}

func TestLevelNextPrevChild(t *testing.T) {
	lvl := newLevel([]uint8{5, 9, 200}, []uint32{100, 200, 300}, 100, 300, childmap.DefaultThreshold, mphf.DefaultGamma)

	next, ok := lvl.NextChild(5)
	require.True(t, ok)
	require.Equal(t, uint8(9), next)

	_, ok = lvl.NextChild(200)
	require.False(t, ok)

	prev, ok := lvl.PrevChild(200)
	require.True(t, ok)
	require.Equal(t, uint8(9), prev)

	_, ok = lvl.PrevChild(5)
	require.False(t, ok)
}
