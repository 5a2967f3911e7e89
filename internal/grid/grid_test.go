package grid

import (
	"errors"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{0, 0, 2, 2}, Rect{0, 0, 2, 2}, true},
		{"side by side", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, false},
		{"stacked", Rect{0, 0, 2, 2}, Rect{0, 2, 2, 2}, false},
		{"partial", Rect{0, 0, 2, 2}, Rect{1, 1, 2, 2}, true},
		{"contained", Rect{0, 0, 4, 4}, Rect{1, 1, 1, 1}, true},
		{"diagonal corner", Rect{0, 0, 2, 2}, Rect{2, 2, 2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRectValid(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"ok", Rect{0, 0, 1, 1}, true},
		{"negative x", Rect{-1, 0, 1, 1}, false},
		{"negative y", Rect{0, -1, 1, 1}, false},
		{"zero width", Rect{0, 0, 0, 1}, false},
		{"zero height", Rect{0, 0, 1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Valid(); got != tt.want {
				t.Errorf("Valid(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestOccupiedCells(t *testing.T) {
	cells := OccupiedCells([]Placement{
		{ID: "a", Rect: Rect{0, 0, 2, 1}},
		{ID: "b", Rect: Rect{3, 1, 1, 2}},
	})
	want := []Cell{{0, 0}, {1, 0}, {3, 1}, {3, 2}}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(cells), len(want))
	}
	for _, c := range want {
		if _, ok := cells[c]; !ok {
			t.Errorf("cell %v missing", c)
		}
	}
}

func TestIsFree(t *testing.T) {
	placements := []Placement{
		{ID: "a", Rect: Rect{0, 0, 2, 2}},
		{ID: "b", Rect: Rect{2, 0, 2, 2}},
	}
	tests := []struct {
		name    string
		rect    Rect
		exclude string
		want    bool
	}{
		{"collides with a", Rect{1, 1, 2, 2}, "", false},
		{"free below", Rect{0, 2, 2, 2}, "", true},
		{"own slot excluded", Rect{0, 0, 2, 2}, "a", true},
		{"own slot not excluded", Rect{0, 0, 2, 2}, "", false},
		{"exclusion is per id", Rect{2, 0, 2, 2}, "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFree(tt.rect, placements, tt.exclude); got != tt.want {
				t.Errorf("IsFree(%v, exclude=%q) = %v, want %v", tt.rect, tt.exclude, got, tt.want)
			}
		})
	}
}

func TestFitsColumns(t *testing.T) {
	if !FitsColumns(Rect{10, 0, 2, 1}, 12) {
		t.Error("rect ending exactly at the last column should fit")
	}
	if FitsColumns(Rect{11, 0, 2, 1}, 12) {
		t.Error("rect crossing the right edge should not fit")
	}
	if FitsColumns(Rect{-1, 0, 2, 1}, 12) {
		t.Error("negative origin should not fit")
	}
}

func TestFindNearestFreeSlot(t *testing.T) {
	two := []Placement{
		{ID: "a", Rect: Rect{0, 0, 2, 2}},
		{ID: "b", Rect: Rect{2, 0, 2, 2}},
	}
	tests := []struct {
		name       string
		desired    Rect
		placements []Placement
		cols       int
		maxRows    int
		want       Rect
		wantErr    bool
	}{
		{
			name:    "empty grid keeps desired",
			desired: Rect{1, 1, 2, 1},
			cols:    4, maxRows: 8,
			want: Rect{1, 1, 2, 1},
		},
		{
			// A 4-column grid fully occupied on the top band: moving onto
			// the occupied slot resolves to the row below, not back onto
			// the mover's old position.
			name:       "occupied target resolves below",
			desired:    Rect{2, 0, 2, 2},
			placements: two,
			cols:       4, maxRows: 8,
			want: Rect{0, 2, 2, 2},
		},
		{
			name: "wraps to earlier slot",
			desired: Rect{3, 0, 1, 1},
			placements: []Placement{
				{ID: "a", Rect: Rect{3, 0, 1, 1}},
			},
			cols: 4, maxRows: 1,
			want: Rect{0, 0, 1, 1},
		},
		{
			name:       "no space within max rows",
			desired:    Rect{0, 0, 2, 2},
			placements: two,
			cols:       4, maxRows: 2,
			wantErr:    true,
		},
		{
			name:    "wider than grid",
			desired: Rect{0, 0, 5, 1},
			cols:    4, maxRows: 8,
			wantErr: true,
		},
		{
			name:    "negative origin clamps to zero",
			desired: Rect{-3, -1, 1, 1},
			cols:    4, maxRows: 8,
			want:    Rect{0, 0, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindNearestFreeSlot(tt.desired, tt.placements, tt.cols, tt.maxRows)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSpace) {
					t.Fatalf("want ErrNoSpace, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampToBounds(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		b    Bounds
		cols int
		want Rect
	}{
		{"no bounds", Rect{0, 0, 3, 2}, Bounds{}, 12, Rect{0, 0, 3, 2}},
		{"below min", Rect{0, 0, 1, 1}, Bounds{MinW: 2, MinH: 2}, 12, Rect{0, 0, 2, 2}},
		{"above max", Rect{0, 0, 8, 5}, Bounds{MaxW: 4, MaxH: 3}, 12, Rect{0, 0, 4, 3}},
		{"clipped by right edge", Rect{10, 0, 6, 1}, Bounds{}, 12, Rect{10, 0, 2, 1}},
		{"never below one cell", Rect{11, 0, 4, 1}, Bounds{}, 12, Rect{11, 0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToBounds(tt.rect, tt.b, tt.cols); got != tt.want {
				t.Errorf("ClampToBounds(%v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestWithinBounds(t *testing.T) {
	b := Bounds{MinW: 1, MaxW: 4, MinH: 1, MaxH: 2}
	if !WithinBounds(2, 1, b) {
		t.Error("2x1 should satisfy bounds")
	}
	if WithinBounds(5, 1, b) {
		t.Error("5 wide should exceed MaxW")
	}
	if WithinBounds(2, 3, b) {
		t.Error("3 tall should exceed MaxH")
	}
	if !WithinBounds(99, 99, Bounds{}) {
		t.Error("zero bounds should be unconstrained")
	}
}
