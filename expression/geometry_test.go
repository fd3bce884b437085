package expression

import (
	"errors"
	"testing"
)

// TestAdjacentPixelsCount verifies that an n by n window always yields
// exactly n*n offsets
func TestAdjacentPixelsCount(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7, 9} {
		offsets, err := AdjacentPixels(n, GeometryLegacy)
		if err != nil {
			t.Fatalf("AdjacentPixels(%d) failed: %v", n, err)
		}
		if len(offsets) != n*n {
			t.Errorf("Expected %d offsets for window size %d, got %d", n*n, n, len(offsets))
		}
	}
}

// TestAdjacentPixelsCanonicalWindow verifies the exact generation order
// of the 3x3 neighborhood
func TestAdjacentPixelsCanonicalWindow(t *testing.T) {
	offsets, err := AdjacentPixels(3, GeometryLegacy)
	if err != nil {
		t.Fatalf("AdjacentPixels(3) failed: %v", err)
	}

	expected := []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 0}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	for i, offset := range offsets {
		if offset != expected[i] {
			t.Errorf("Expected offset[%d]=%v, got %v", i, expected[i], offset)
		}
	}
}

// TestAdjacentPixelsLegacyOffCenter verifies that the legacy generation
// is preserved for window sizes other than 3, off-center included
func TestAdjacentPixelsLegacyOffCenter(t *testing.T) {
	offsets, err := AdjacentPixels(1, GeometryLegacy)
	if err != nil {
		t.Fatalf("AdjacentPixels(1) failed: %v", err)
	}
	if offsets[0] != (Offset{-1, -1}) {
		t.Errorf("Expected legacy size-1 offset [-1,-1], got %v", offsets[0])
	}

	offsets, err = AdjacentPixels(5, GeometryLegacy)
	if err != nil {
		t.Fatalf("AdjacentPixels(5) failed: %v", err)
	}
	if offsets[0] != (Offset{-1, -1}) {
		t.Errorf("Expected first size-5 offset [-1,-1], got %v", offsets[0])
	}
	if offsets[len(offsets)-1] != (Offset{3, 3}) {
		t.Errorf("Expected last size-5 offset [3,3], got %v", offsets[len(offsets)-1])
	}
}

// TestAdjacentPixelsCentered verifies the explicit centered variant
func TestAdjacentPixelsCentered(t *testing.T) {
	offsets, err := AdjacentPixels(5, GeometryCentered)
	if err != nil {
		t.Fatalf("AdjacentPixels(5, centered) failed: %v", err)
	}
	if offsets[0] != (Offset{-2, -2}) {
		t.Errorf("Expected first centered offset [-2,-2], got %v", offsets[0])
	}
	if offsets[len(offsets)-1] != (Offset{2, 2}) {
		t.Errorf("Expected last centered offset [2,2], got %v", offsets[len(offsets)-1])
	}

	// For the canonical window size both modes agree.
	legacy, _ := AdjacentPixels(3, GeometryLegacy)
	centered, _ := AdjacentPixels(3, GeometryCentered)
	for i := range legacy {
		if legacy[i] != centered[i] {
			t.Errorf("Expected size-3 modes to agree at %d: %v vs %v", i, legacy[i], centered[i])
		}
	}
}

// TestAdjacentPixelsInvalidSize verifies fail-fast behavior for
// non-positive window sizes
func TestAdjacentPixelsInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -9} {
		offsets, err := AdjacentPixels(n, GeometryLegacy)
		if err == nil {
			t.Fatalf("Expected error for window size %d, got offsets %v", n, offsets)
		}
		if !errors.Is(err, ErrWindowSize) {
			t.Errorf("Expected ErrWindowSize for %d, got %v", n, err)
		}
		if offsets != nil {
			t.Errorf("Expected no offsets for %d, got %v", n, offsets)
		}
	}
}

// TestAdjacentPixelsUnknownMode verifies that a misspelled geometry mode
// fails instead of falling back to either window
func TestAdjacentPixelsUnknownMode(t *testing.T) {
	for _, mode := range []GeometryMode{"Centered", "centred", "Legacy", ""} {
		offsets, err := AdjacentPixels(3, mode)
		if err == nil {
			t.Fatalf("Expected error for geometry mode %q, got offsets %v", mode, offsets)
		}
		if !errors.Is(err, ErrGeometryMode) {
			t.Errorf("Expected ErrGeometryMode for %q, got %v", mode, err)
		}
		if offsets != nil {
			t.Errorf("Expected no offsets for %q, got %v", mode, offsets)
		}
	}
}

// TestOffsetString verifies the relative addressing syntax
func TestOffsetString(t *testing.T) {
	cases := map[Offset]string{
		{-1, -1}: "[-1,-1]",
		{0, 0}:   "[0,0]",
		{1, -1}:  "[1,-1]",
		{3, 0}:   "[3,0]",
	}
	for offset, expected := range cases {
		if got := offset.String(); got != expected {
			t.Errorf("Expected %s, got %s", expected, got)
		}
	}
}
