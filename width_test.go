package stree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWidthRootSlots(t *testing.T) {
	require.Equal(t, uint64(1)<<24, Width40.rootSlots())
	require.Equal(t, uint64(1)<<32, Width48.rootSlots())
	require.Equal(t, uint64(1)<<48, Width64.rootSlots())
}

func TestWidthSplitJoinRoundTrip(t *testing.T) {
	keys := []uint64{0, 1, 3, 23, 123, 232, 500, 20000, 30000, 50000, 100000, 200000, 200005, 1065983}

	for _, key := range keys {
		i, j, k := Width40.split(key)
		require.Equal(t, key, Width40.join(i, j, k))
	}
}

func TestWidthSplitLayout(t *testing.T) {
	// key = (i << 16) | (j << 8) | k
	key := uint64(0x123456)
	i, j, k := Width40.split(key)

	require.Equal(t, uint64(0x12), i)
	require.Equal(t, uint8(0x34), j)
	require.Equal(t, uint8(0x56), k)
}

func TestWidthFitsMasksHighBits(t *testing.T) {
	require.True(t, Width40.fits(0xFFFFFFFFFF))
	require.False(t, Width40.fits(0x10000000000))
}

func TestWidthValid(t *testing.T) {
	require.True(t, Width40.valid())
	require.True(t, Width48.valid())
	require.True(t, Width64.valid())
	require.False(t, Width(32).valid())
}
