package jsonutil

import "testing"

func TestUnmarshalWithContext(t *testing.T) {
	var v map[string]any
	if err := UnmarshalWithContext([]byte(`{"a":1}`), &v, "decode thing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := UnmarshalWithContext([]byte(`{broken`), &v, "decode thing")
	if err == nil {
		t.Fatal("want error for malformed JSON")
	}
	if got := err.Error(); len(got) < len("decode thing") || got[:12] != "decode thing" {
		t.Errorf("error %q should be prefixed with the context", got)
	}
}

func TestGetString(t *testing.T) {
	m := map[string]any{"s": "hello", "n": 3.0}
	if got := GetString(m, "s"); got != "hello" {
		t.Errorf("GetString = %q, want hello", got)
	}
	if got := GetString(m, "n"); got != "" {
		t.Errorf("non-string value should yield empty, got %q", got)
	}
	if got := GetStringOr(m, "missing", "fb"); got != "fb" {
		t.Errorf("GetStringOr = %q, want fallback", got)
	}
	if got := GetStringOr(map[string]any{"s": ""}, "s", "fb"); got != "fb" {
		t.Errorf("empty string should fall back, got %q", got)
	}
}

func TestGetInt(t *testing.T) {
	m := map[string]any{"i": 3, "f": 4.0, "s": "x"}
	tests := []struct {
		key  string
		want int
	}{
		{"i", 3},
		{"f", 4}, // JSON numbers decode as float64
		{"s", 9},
		{"missing", 9},
	}
	for _, tt := range tests {
		if got := GetInt(m, tt.key, 9); got != tt.want {
			t.Errorf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{3.0, "3"},
		{3.5, "3.5"},
		{true, "true"},
		{7, "7"},
	}
	for _, tt := range tests {
		if got := ToString(tt.in); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
