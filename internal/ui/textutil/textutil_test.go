package textutil

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"…", 1},
		{"日本", 4},
		{"a日b", 4},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "abc", 5, "abc"},
		{"exact", "abc", 3, "abc"},
		{"clipped", "abcdef", 4, "abc…"},
		{"zero", "abc", 0, ""},
		{"one column", "abc", 1, "…"},
		{"wide rune boundary", "日本語", 4, "日…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight(ab, 4) = %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abc…" {
		t.Errorf("PadRight should truncate when too wide, got %q", got)
	}
	if got := PadRight("日", 4); got != "日  " {
		t.Errorf("PadRight(日, 4) = %q", got)
	}
	if got := Width(PadRight("日本", 5)); got != 5 {
		t.Errorf("padded width = %d, want 5", got)
	}
}
