package ui

import (
	"strings"
	"testing"
	"time"

	"griddeck/internal/dashboard"
)

var renderNow = time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC)

func TestRenderWidgetContentClock(t *testing.T) {
	wd := dashboard.Widget{
		Type:     "clock",
		Settings: map[string]any{"format": "15:04"},
	}
	lines := renderWidgetContent(wd, 20, 4, renderNow, true)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "14:30" {
		t.Errorf("time line = %q, want 14:30", lines[0])
	}
	if lines[1] != "Mon Jun 1" {
		t.Errorf("date line = %q, want Mon Jun 1", lines[1])
	}
}

func TestRenderWidgetContentClockTimezone(t *testing.T) {
	wd := dashboard.Widget{
		Type: "clock",
		Settings: map[string]any{
			"format":   "15:04",
			"timezone": "America/New_York",
		},
	}
	lines := renderWidgetContent(wd, 20, 4, renderNow, true)
	if lines[0] != "10:30" {
		t.Errorf("time line = %q, want 10:30 (UTC-4 in June)", lines[0])
	}
}

func TestRenderWidgetContentOrphan(t *testing.T) {
	wd := dashboard.Widget{Type: "retired-type"}
	lines := renderWidgetContent(wd, 40, 4, renderNow, false)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "retired-type") {
		t.Errorf("placeholder should name the type, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "press x to remove") {
		t.Errorf("placeholder should hint removal, got %q", lines[1])
	}
}

func TestRenderWidgetContentCollapsed(t *testing.T) {
	wd := dashboard.Widget{Type: "notes", Collapsed: true}
	lines := renderWidgetContent(wd, 20, 4, renderNow, true)
	if len(lines) != 1 || lines[0] != "(collapsed)" {
		t.Errorf("collapsed content = %v", lines)
	}
}

func TestRenderWidgetContentGauge(t *testing.T) {
	wd := dashboard.Widget{
		Type: "gauge",
		Settings: map[string]any{
			"metric": "cpu",
			"min":    0,
			"max":    100,
			"value":  50,
		},
	}
	lines := renderWidgetContent(wd, 10, 4, renderNow, true)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "cpu" {
		t.Errorf("metric line = %q", lines[0])
	}
	wantBar := strings.Repeat("█", 5) + strings.Repeat("░", 5)
	if lines[1] != wantBar {
		t.Errorf("bar = %q, want %q", lines[1], wantBar)
	}
	if lines[2] != "50 / 100" {
		t.Errorf("value line = %q", lines[2])
	}
}

func TestRenderWidgetContentGaugeClampsValue(t *testing.T) {
	wd := dashboard.Widget{
		Type: "gauge",
		Settings: map[string]any{
			"metric": "mem",
			"min":    0,
			"max":    10,
			"value":  999,
		},
	}
	lines := renderWidgetContent(wd, 8, 4, renderNow, true)
	if lines[1] != strings.Repeat("█", 8) {
		t.Errorf("bar should be full at clamped max, got %q", lines[1])
	}
	if lines[2] != "10 / 10" {
		t.Errorf("value line = %q", lines[2])
	}
}

func TestRenderWidgetContentNotes(t *testing.T) {
	wd := dashboard.Widget{
		Type:     "notes",
		Settings: map[string]any{"body": "first\nsecond\nthird"},
	}
	lines := renderWidgetContent(wd, 20, 2, renderNow, true)
	if len(lines) != 2 {
		t.Fatalf("notes should clip to height, got %d lines", len(lines))
	}
	if lines[0] != "first" || lines[1] != "second" {
		t.Errorf("lines = %v", lines)
	}

	empty := dashboard.Widget{Type: "notes", Settings: map[string]any{}}
	lines = renderWidgetContent(empty, 20, 4, renderNow, true)
	if lines[0] != "(no notes)" {
		t.Errorf("empty notes = %q", lines[0])
	}
}

func TestRenderWidgetContentWeather(t *testing.T) {
	wd := dashboard.Widget{
		Type: "weather",
		Settings: map[string]any{
			"location": "Lisbon",
			"units":    "imperial",
		},
	}
	lines := renderWidgetContent(wd, 30, 4, renderNow, true)
	if lines[0] != "Lisbon" {
		t.Errorf("location = %q", lines[0])
	}
	if !strings.Contains(lines[1], "°F") {
		t.Errorf("imperial units should show °F, got %q", lines[1])
	}
}

func TestRenderWidgetContentTruncatesWide(t *testing.T) {
	wd := dashboard.Widget{
		Type:     "notes",
		Settings: map[string]any{"body": "a very long note line that will not fit"},
	}
	lines := renderWidgetContent(wd, 10, 4, renderNow, true)
	if got := len([]rune(lines[0])); got > 10 {
		t.Errorf("line not truncated: %q (%d runes)", lines[0], got)
	}
	if !strings.HasSuffix(lines[0], "…") {
		t.Errorf("truncated line should end in ellipsis: %q", lines[0])
	}
}
