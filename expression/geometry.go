package expression

import (
	"fmt"

	"github.com/pkg/errors"
)

// GeometryMode defines the type of the window-generation specifier.
type GeometryMode string

const (
	// GeometryLegacy reproduces the published offset generation: each
	// offset is (col-1, row-1) with col as the outer loop. For a window
	// size of 3 this is the canonical 3x3 neighborhood; for any other
	// size the block is off-center (size 1 yields [-1,-1], size 5 spans
	// -1..3). Downstream expressions depend on this exact sequence, so
	// it stays the default.
	GeometryLegacy = "legacy"

	// GeometryCentered generates a mathematically centered window,
	// (col - n/2, row - n/2). Opt-in only; it produces different
	// expressions than the published retrieval for sizes other than 3.
	GeometryCentered = "centered"
)

// Offset is a relative (row, column) pixel displacement from the pixel
// under evaluation.
type Offset struct {
	Row int
	Col int
}

// String renders the offset in the raster engine's relative addressing
// syntax, e.g. [-1,0].
func (o Offset) String() string {
	return fmt.Sprintf("[%d,%d]", o.Row, o.Col)
}

// AdjacentPixels derives the ordered offsets of the n by n window of
// adjacent pixels. The sequence order determines term order in every
// derived expression and is stable across calls.
func AdjacentPixels(n int, mode GeometryMode) ([]Offset, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrWindowSize, "window size %d", n)
	}

	offsets := make([]Offset, 0, n*n)
	switch mode {
	case GeometryLegacy:
		for col := 0; col < n; col++ {
			for row := 0; row < n; row++ {
				offsets = append(offsets, Offset{Row: col - 1, Col: row - 1})
			}
		}
	case GeometryCentered:
		half := n / 2
		for col := 0; col < n; col++ {
			for row := 0; row < n; row++ {
				offsets = append(offsets, Offset{Row: col - half, Col: row - half})
			}
		}
	default:
		// The two windows generate different expressions, so a typo
		// must never fall through to either of them.
		return nil, errors.Wrapf(ErrGeometryMode, "%q", mode)
	}
	return offsets, nil
}
