// Package grid implements the pure geometry layer for dashboard layouts:
// cell occupancy, collision detection, free-slot search, and bounds clamping.
// Functions here never mutate their inputs and carry no state, so callers can
// use them for both committed placements and read-only drag previews.
package grid

import (
	"errors"
	"fmt"
)

// ErrNoSpace is returned when a panel has no free slot for the requested
// rectangle within its column count and the configured maximum row count.
var ErrNoSpace = errors.New("no space available")

// Rect is a widget rectangle in grid-cell units.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Cell is a single grid coordinate.
type Cell struct {
	X int
	Y int
}

// Bounds holds optional min/max size limits for a widget.
// A zero value means the dimension is unconstrained.
type Bounds struct {
	MinW int `json:"minW,omitempty"`
	MaxW int `json:"maxW,omitempty"`
	MinH int `json:"minH,omitempty"`
	MaxH int `json:"maxH,omitempty"`
}

// Placement pairs a rectangle with the id of the widget occupying it.
// The id lets collision checks exclude a widget's own prior position.
type Placement struct {
	ID   string
	Rect Rect
}

// String returns the rect in "x,y wxh" form for logs and errors.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

// Overlaps reports whether two rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Valid reports whether the rect has a non-negative origin and positive size.
func (r Rect) Valid() bool {
	return r.X >= 0 && r.Y >= 0 && r.W > 0 && r.H > 0
}

// OccupiedCells returns every cell covered by the given placements.
func OccupiedCells(placements []Placement) map[Cell]struct{} {
	occupied := make(map[Cell]struct{})
	for _, p := range placements {
		for x := p.Rect.X; x < p.Rect.X+p.Rect.W; x++ {
			for y := p.Rect.Y; y < p.Rect.Y+p.Rect.H; y++ {
				occupied[Cell{X: x, Y: y}] = struct{}{}
			}
		}
	}
	return occupied
}

// IsFree reports whether rect overlaps no placement other than excludeID.
// Pass an empty excludeID when placing a brand-new widget.
func IsFree(rect Rect, placements []Placement, excludeID string) bool {
	for _, p := range placements {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		if rect.Overlaps(p.Rect) {
			return false
		}
	}
	return true
}

// FitsColumns reports whether rect lies within a grid of the given column count.
func FitsColumns(rect Rect, cols int) bool {
	return rect.X >= 0 && rect.X+rect.W <= cols
}

// FindNearestFreeSlot scans outward from desired in row-major order and
// returns the first slot of the desired size that overlaps no placement.
// The scan runs from the desired position to the end of the grid, then wraps
// to the rows and columns before it. Unlike IsFree, no widget is excluded:
// during a move the caller's old rectangle still counts as occupied, so the
// resolved slot never lands back on it. Returns ErrNoSpace once every row up
// to maxRows has been tried.
func FindNearestFreeSlot(desired Rect, placements []Placement, cols, maxRows int) (Rect, error) {
	if desired.W <= 0 || desired.H <= 0 || desired.W > cols {
		return Rect{}, fmt.Errorf("slot %s exceeds %d columns: %w", desired, cols, ErrNoSpace)
	}
	startX, startY := desired.X, desired.Y
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}
	lastY := maxRows - desired.H
	free := func(x, y int) (Rect, bool) {
		candidate := Rect{X: x, Y: y, W: desired.W, H: desired.H}
		return candidate, IsFree(candidate, placements, "")
	}
	// Forward from the desired position.
	for y := startY; y <= lastY; y++ {
		fromX := 0
		if y == startY {
			fromX = startX
		}
		for x := fromX; x+desired.W <= cols; x++ {
			if candidate, ok := free(x, y); ok {
				return candidate, nil
			}
		}
	}
	// Wrap to the slots before the desired position.
	for y := 0; y <= lastY && y <= startY; y++ {
		toX := cols - desired.W
		if y == startY {
			toX = startX - 1
		}
		for x := 0; x <= toX; x++ {
			if candidate, ok := free(x, y); ok {
				return candidate, nil
			}
		}
	}
	return Rect{}, fmt.Errorf("no %dx%d slot within %d columns and %d rows: %w",
		desired.W, desired.H, cols, maxRows, ErrNoSpace)
}

// ClampToBounds clips the rect's size to the widget's declared bounds and to
// the columns remaining right of its origin. Position is left untouched.
func ClampToBounds(rect Rect, b Bounds, cols int) Rect {
	out := rect
	if b.MinW > 0 && out.W < b.MinW {
		out.W = b.MinW
	}
	if b.MaxW > 0 && out.W > b.MaxW {
		out.W = b.MaxW
	}
	if b.MinH > 0 && out.H < b.MinH {
		out.H = b.MinH
	}
	if b.MaxH > 0 && out.H > b.MaxH {
		out.H = b.MaxH
	}
	if out.X+out.W > cols {
		out.W = cols - out.X
	}
	if out.W < 1 {
		out.W = 1
	}
	if out.H < 1 {
		out.H = 1
	}
	return out
}

// WithinBounds reports whether w and h satisfy the declared bounds.
func WithinBounds(w, h int, b Bounds) bool {
	if b.MinW > 0 && w < b.MinW {
		return false
	}
	if b.MaxW > 0 && w > b.MaxW {
		return false
	}
	if b.MinH > 0 && h < b.MinH {
		return false
	}
	if b.MaxH > 0 && h > b.MaxH {
		return false
	}
	return true
}
