// Package catalog defines the closed registry of known widget types.
// Each type carries its default title, default grid size, size bounds, and
// default settings. The dashboard store consults the catalog when a widget is
// added; widgets whose type tag is no longer registered are kept as orphans
// and rendered as an error placeholder rather than deleted.
package catalog

import (
	"sort"

	"griddeck/internal/grid"
)

// Definition describes one widget type available for placement.
type Definition struct {
	Type            string
	Title           string
	DefaultW        int
	DefaultH        int
	Bounds          grid.Bounds
	DefaultSettings map[string]any
}

// DefaultRect returns the definition's default size anchored at the origin.
func (d Definition) DefaultRect() grid.Rect {
	return grid.Rect{X: 0, Y: 0, W: d.DefaultW, H: d.DefaultH}
}

// builtins is the full set of widget types griddeck knows how to render.
// The registry is closed: unknown tags are represented as orphaned widgets
// by the UI layer, never dispatched dynamically.
var builtins = map[string]Definition{
	"clock": {
		Type:     "clock",
		Title:    "Clock",
		DefaultW: 2, DefaultH: 1,
		Bounds:          grid.Bounds{MinW: 1, MaxW: 4, MinH: 1, MaxH: 2},
		DefaultSettings: map[string]any{"format": "15:04:05", "timezone": "Local"},
	},
	"status": {
		Type:     "status",
		Title:    "Status",
		DefaultW: 2, DefaultH: 2,
		Bounds:          grid.Bounds{MinW: 2, MaxW: 6, MinH: 1, MaxH: 4},
		DefaultSettings: map[string]any{"source": "", "interval_seconds": 30},
	},
	"notes": {
		Type:     "notes",
		Title:    "Notes",
		DefaultW: 3, DefaultH: 2,
		Bounds:          grid.Bounds{MinW: 2, MaxH: 6},
		DefaultSettings: map[string]any{"body": ""},
	},
	"gauge": {
		Type:     "gauge",
		Title:    "Gauge",
		DefaultW: 2, DefaultH: 2,
		Bounds:          grid.Bounds{MinW: 1, MaxW: 3, MinH: 1, MaxH: 3},
		DefaultSettings: map[string]any{"metric": "", "min": 0, "max": 100},
	},
	"worldmap": {
		Type:     "worldmap",
		Title:    "World Map",
		DefaultW: 4, DefaultH: 3,
		Bounds:          grid.Bounds{MinW: 3, MinH: 2},
		DefaultSettings: map[string]any{"lat": 0.0, "lon": 0.0, "zoom": 2},
	},
	"weather": {
		Type:     "weather",
		Title:    "Weather",
		DefaultW: 2, DefaultH: 2,
		Bounds:          grid.Bounds{MinW: 2, MaxW: 4, MinH: 1, MaxH: 3},
		DefaultSettings: map[string]any{"location": "", "units": "metric"},
	},
}

// Lookup returns the definition for a type tag.
func Lookup(typeTag string) (Definition, bool) {
	def, ok := builtins[typeTag]
	return def, ok
}

// Types returns all registered type tags in sorted order.
func Types() []string {
	out := make([]string, 0, len(builtins))
	for t := range builtins {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Definitions returns all registered definitions ordered by type tag.
func Definitions() []Definition {
	types := Types()
	out := make([]Definition, 0, len(types))
	for _, t := range types {
		out = append(out, builtins[t])
	}
	return out
}

// clone returns a copy of a settings bag so callers never share the
// registry's map.
func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Settings returns a fresh copy of the default settings for a type tag,
// or an empty bag for unknown tags.
func Settings(typeTag string) map[string]any {
	if def, ok := builtins[typeTag]; ok {
		return clone(def.DefaultSettings)
	}
	return map[string]any{}
}
