package stree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildErrorAs(t *testing.T) {
	err := error(errUnsorted(3))

	var be *BuildError
	require.True(t, errors.As(err, &be))
	require.Equal(t, Unsorted, be.Kind)
	require.Equal(t, 3, be.Index)
}

func TestBuildErrorKindString(t *testing.T) {
	require.Equal(t, "EmptyInput", EmptyInput.String())
	require.Equal(t, "WidthTooLarge", WidthTooLarge.String())
	require.Equal(t, "Unsorted", Unsorted.String())
	require.Equal(t, "Duplicate", Duplicate.String())
}
