package childmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flier/go-stree/pkg/childmap"
)

func TestMapSmallCardinality(t *testing.T) {
	m := childmap.New([]uint8{42}, []string{"only"}, childmap.DefaultThreshold)

	require.Equal(t, 1, m.Len())
	require.Equal(t, "only", m.Lookup(42))
}

func TestMapAboveThreshold(t *testing.T) {
	keys := []uint8{1, 5, 7, 9, 42, 100, 200, 255}
	values := make([]int, len(keys))
	for i, k := range keys {
		values[i] = int(k) * 10
	}

	m := childmap.New(keys, values, childmap.DefaultThreshold)

	require.Equal(t, len(keys), m.Len())

	for i, k := range keys {
		require.Equal(t, values[i], m.Lookup(k))
	}
}

func TestMapFullByteDomain(t *testing.T) {
	keys := make([]uint8, 256)
	values := make([]int, 256)

	for i := range keys {
		keys[i] = uint8(i)
		values[i] = i
	}

	m := childmap.New(keys, values, childmap.DefaultThreshold)

	for i := range keys {
		require.Equal(t, i, m.Lookup(uint8(i)))
	}
}

func TestMapGammaOverride(t *testing.T) {
	keys := []uint8{1, 5, 7, 9, 42, 100, 200, 255}
	values := make([]int, len(keys))

	for i, k := range keys {
		values[i] = int(k) * 10
	}

	m := childmap.NewGamma(keys, values, childmap.DefaultThreshold, 4.0)

	require.Equal(t, len(keys), m.Len())

	for i, k := range keys {
		require.Equal(t, values[i], m.Lookup(k))
	}
}

func TestMapZeroThreshold(t *testing.T) {
	keys := []uint8{10, 20, 30}
	values := []string{"a", "b", "c"}

	m := childmap.New(keys, values, 0)

	for i, k := range keys {
		require.Equal(t, values[i], m.Lookup(k))
	}
}
