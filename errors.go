package stree

import (
	"fmt"

	"github.com/flier/go-stree/pkg/xerrors"
)

// BuildErrorKind discriminates the reasons [Build] can fail.
type BuildErrorKind int

const (
	// EmptyInput is returned when the key slice passed to Build is empty.
	EmptyInput BuildErrorKind = iota
	// WidthTooLarge is returned when a width's root table would require
	// more slots than the configured MaxRootSlots allows.
	WidthTooLarge
	// Unsorted is returned when the optional precondition check (see
	// [Options.CheckPreconditions]) finds keys out of ascending order.
	Unsorted
	// Duplicate is returned when the optional precondition check finds a
	// repeated key.
	Duplicate
)

// String implements fmt.Stringer.
func (k BuildErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case WidthTooLarge:
		return "WidthTooLarge"
	case Unsorted:
		return "Unsorted"
	case Duplicate:
		return "Duplicate"
	default:
		return fmt.Sprintf("BuildErrorKind(%d)", int(k))
	}
}

// BuildError reports why [Build] could not construct an STree. Callers can
// discriminate the kind with [AsBuildError] or with errors.As directly,
// since BuildError implements the error interface.
type BuildError struct {
	Kind BuildErrorKind

	// Index is the position in the input slice where the violation was
	// detected. Meaningful only for Unsorted and Duplicate.
	Index int

	msg string
}

func (e *BuildError) Error() string {
	if e.msg != "" {
		return "stree: " + e.msg
	}

	return "stree: build failed: " + e.Kind.String()
}

// AsBuildError extracts a *BuildError from err, unwrapping as needed.
func AsBuildError(err error) (*BuildError, bool) {
	return xerrors.AsA[*BuildError](err)
}

func errEmptyInput() *BuildError {
	return &BuildError{Kind: EmptyInput, msg: "empty key set"}
}

func errWidthTooLarge(w Width, slots, max uint64) *BuildError {
	return &BuildError{
		Kind: WidthTooLarge,
		msg:  fmt.Sprintf("width %s needs %d root slots, exceeds limit %d", w, slots, max),
	}
}

func errUnsorted(index int) *BuildError {
	return &BuildError{
		Kind:  Unsorted,
		Index: index,
		msg:   fmt.Sprintf("keys[%d] is not greater than keys[%d]", index, index-1),
	}
}

func errDuplicate(index int) *BuildError {
	return &BuildError{
		Kind:  Duplicate,
		Index: index,
		msg:   fmt.Sprintf("keys[%d] duplicates keys[%d]", index, index-1),
	}
}
